// Package github implements the GitHub OAuth2 identity provider.
//
// Authenticate redirects to GitHub's authorization page; HandleCallback
// exchanges the authorization code, fetches the user profile (resolving the
// primary email through the emails API when the profile hides it), and hands
// it to the application's ValidateUser function for account resolution.
package github
