// Package google implements the Google OAuth2 identity provider.
//
// Authenticate redirects to Google's consent screen; HandleCallback exchanges
// the authorization code, fetches the OpenID Connect userinfo profile, and
// hands it to the application's ValidateUser function for account resolution.
package google
