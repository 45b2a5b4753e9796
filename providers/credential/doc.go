// Package credential implements the email/password identity provider.
//
// The provider is a thin adapter: it extracts credentials from the request
// body and binds them to the application-supplied ValidateUser function;
// session creation, failure shaping, and redirects all run through the
// shared provider contract.
//
//	p, err := credential.New(credential.Config{
//		ValidateUser: func(ctx context.Context, email, password string) (provider.Result, error) {
//			user, err := users.Authenticate(ctx, email, password)
//			if errors.Is(err, userstore.ErrInvalidCredentials) {
//				return provider.Result{Info: &provider.Info{Message: "invalid email or password"}}, nil
//			}
//			if err != nil {
//				return provider.Result{}, err
//			}
//			return provider.Result{User: user}, nil
//		},
//	})
package credential
