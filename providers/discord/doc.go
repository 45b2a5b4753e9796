// Package discord implements the Discord OAuth2 identity provider.
//
// Authenticate redirects to Discord's authorization page; HandleCallback
// exchanges the authorization code, fetches the current user from the
// users/@me API, and hands it to the application's ValidateUser function for
// account resolution.
package discord
