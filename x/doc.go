/*
Package x contains the extensions built on top of the core
framework types.

Each subpackage bundles the models, messages and handlers of
one extension. This package itself holds only the interfaces
and helpers the extensions share, most notably authentication.
*/
package x
