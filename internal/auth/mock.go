package auth

import "context"

// MockUserID is the fixed principal returned by the mock provider.
const MockUserID = "b1cc7526-53e5-443d-9f47-9bc615dc35e5"

// MockProvider accepts any non-empty credential and always resolves to
// the same test user. Selected via AUTH_PROVIDER=mock for local
// development; never enable it in a deployed environment.
type MockProvider struct{}

// NewMockProvider creates the development identity provider.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) Signup(_ context.Context, email, _, username string) (*Identity, error) {
	return &Identity{UserID: MockUserID, Email: email, Username: username}, nil
}

func (p *MockProvider) Login(_ context.Context, _, _ string) (*Token, error) {
	return &Token{AccessToken: "mock-token", RefreshToken: "mock-refresh", UserID: MockUserID}, nil
}

func (p *MockProvider) Verify(_ context.Context, accessToken string) (*Identity, error) {
	if accessToken == "" {
		return nil, ErrUnauthenticated
	}
	return &Identity{UserID: MockUserID, Email: "mock@example.com", Username: "mockuser"}, nil
}
