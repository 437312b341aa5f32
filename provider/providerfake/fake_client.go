package providerfake

import (
	"context"
	"sync"

	"github.com/myjarvis/auth-api/provider"
)

var _ provider.Client = (*FakeClient)(nil)

// FakeClient is an in-memory stand-in for the identity provider. Each
// operation returns the canned response or error configured for it and
// records the arguments it was called with.
type FakeClient struct {
	lock sync.Mutex

	SignUpResponse  *provider.TokenResponse
	SignUpErr       error
	SignInResponse  *provider.TokenResponse
	SignInErr       error
	SignOutErr      error
	RefreshResponse *provider.TokenResponse
	RefreshErr      error
	ResetErr        error
	GetUserResponse *provider.User
	GetUserErr      error

	Calls []Call
}

// Call records one provider invocation for assertions.
type Call struct {
	Method       string
	Email        string
	Password     string
	RedirectTo   string
	AccessToken  string
	RefreshToken string
}

func NewFakeClient() *FakeClient {
	return &FakeClient{}
}

func (f *FakeClient) record(call Call) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.Calls = append(f.Calls, call)
}

// CallsTo returns the recorded calls for one method.
func (f *FakeClient) CallsTo(method string) []Call {
	f.lock.Lock()
	defer f.lock.Unlock()

	var calls []Call
	for _, call := range f.Calls {
		if call.Method == method {
			calls = append(calls, call)
		}
	}
	return calls
}

func (f *FakeClient) SignUp(_ context.Context, email, password, redirectTo string) (*provider.TokenResponse, error) {
	f.record(Call{Method: "SignUp", Email: email, Password: password, RedirectTo: redirectTo})
	if f.SignUpErr != nil {
		return nil, f.SignUpErr
	}
	return f.SignUpResponse, nil
}

func (f *FakeClient) SignInWithPassword(_ context.Context, email, password string) (*provider.TokenResponse, error) {
	f.record(Call{Method: "SignInWithPassword", Email: email, Password: password})
	if f.SignInErr != nil {
		return nil, f.SignInErr
	}
	return f.SignInResponse, nil
}

func (f *FakeClient) SignOut(_ context.Context, accessToken string) error {
	f.record(Call{Method: "SignOut", AccessToken: accessToken})
	return f.SignOutErr
}

func (f *FakeClient) RefreshSession(_ context.Context, refreshToken string) (*provider.TokenResponse, error) {
	f.record(Call{Method: "RefreshSession", RefreshToken: refreshToken})
	if f.RefreshErr != nil {
		return nil, f.RefreshErr
	}
	return f.RefreshResponse, nil
}

func (f *FakeClient) ResetPasswordForEmail(_ context.Context, email, redirectTo string) error {
	f.record(Call{Method: "ResetPasswordForEmail", Email: email, RedirectTo: redirectTo})
	return f.ResetErr
}

func (f *FakeClient) GetUser(_ context.Context, accessToken string) (*provider.User, error) {
	f.record(Call{Method: "GetUser", AccessToken: accessToken})
	if f.GetUserErr != nil {
		return nil, f.GetUserErr
	}
	return f.GetUserResponse, nil
}
