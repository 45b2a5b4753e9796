// Package provider defines the contract every identity provider honors and
// the shared behavior they inherit.
//
// A provider is a strategy for establishing a user's identity: checking
// locally submitted credentials, or completing an OAuth2 authorization-code
// flow. Providers differ only in how they obtain a verification Result;
// everything after verification (session creation, soft-failure shaping,
// redirect policy) is centralized in Base so no provider can create a
// session outside the canonical path.
//
// The Flow value threads the injected capabilities (session creation,
// success/failure redirect URLs) through every provider call. It is built
// once at auth-service construction, never mutated afterwards.
//
// Failure channels are strictly separated:
//
//   - soft failure: verification returns Result{User: nil, Info: ...};
//     normalized by Base.HandleAuthError into a redirect or JSON body
//   - hard failure: verification (or session creation) returns an error;
//     propagated to the surrounding error-handling collaborator
package provider
