// Package model defines the core domain types for fincast.
//
// # Ownership
//
// The instance graph is a strict tree: a Family owns Persons, and each
// Person owns its Accounts, Debts, Policies and Jobs by composition.
// Instruments never reference back up the tree; a Person looks up its own
// instruments by name. Nothing in this package is safe for concurrent
// mutation: a simulation run mutates its graph from a single goroutine,
// and independent runs build independent graphs.
//
// # Funding
//
// Accounts, revolving debts and insurance policies can all supply money
// toward a Bill. They do so behind the FundingSource interface, which
// reads capacity fresh from instrument state on every query so that bills
// resolved later in a year observe the balances left by earlier bills.
//
// # Design principles
//
//  1. Closed variant sets: account and debt kinds are enumerated strings,
//     not subtypes. New instrument kinds are new variants.
//  2. No ambient state: year-scoped counters (contributions, accrued
//     interest) live on the instruments and are reset by the engine at
//     year end.
//  3. Money is decimal: balances and amounts round to cents after every
//     mutation so repeated runs are bit-for-bit identical.
package model
