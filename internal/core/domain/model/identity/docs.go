// Package identity models the authenticated caller of the terminal.
//
// Authentication itself happens elsewhere; this package only carries the resolved result
// (user id, username, Role and optional branch) so commands can check preconditions and
// role-gated transitions without reading any global session state.
package identity
