// Package core contains the canonical dealer domain contracts, entities, and
// credential assignment logic. Lower-level adapters must depend on this
// package; core must not depend on storage or transport adapters.
package core
