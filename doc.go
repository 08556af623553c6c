/*
Package tokenswap defines all common interfaces that tie the packages of
this repository together, as well as implementations of some of the
simpler components (when interfaces would be too much overhead).

The heart of the repository is the x/swap extension, a trustless
two-party token-swap escrow. The root package provides the pieces it is
built from: deterministic condition-derived addresses, the key-value
store contracts, transactions and message routing, and the
check/deliver handler model.

We pass context through context.Context between app, middleware, and
handlers. Common keys store info such as block height and chain id.
There exist two functions for every XYZ of type T supported in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)
*/
package tokenswap
