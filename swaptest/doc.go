/*
Package swaptest provides mocks and helpers to test the application
without a running blockchain node.

Structures provided by this package are either test doubles of the
core interfaces or small helpers to cut down the boilerplate of
handler tests.
*/
package swaptest
