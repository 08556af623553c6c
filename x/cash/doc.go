/*
Package cash defines a simple implementation of sending coins
between multi-signature wallets.

There is no logic in the Wallet model, besides keeping a set of
coins. The Controller is the entry point to manipulate wallets
and is used by other extensions that need to move value around.
*/
package cash
