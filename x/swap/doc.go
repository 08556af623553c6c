/*
Package swap implements a trustless exchange of two tokens between
two parties.

An initializer opens a swap by naming a taker, depositing tokens of
one currency and stating the amount of another currency expected in
return. The deposit is locked in a custody vault owned by the swap
record itself. Once the counter vault holds the requested payment,
anyone may trigger the exchange, which pays both sides out in one
atomic step. Until then the initializer or the taker may cancel and
all funds return to where they came from.

Record and vault addresses are derived, never stored in any registry:
the record address is a function of the initializer and a seed, the
vault addresses a function of the record address and the currency
they hold. Knowing the parties and the seed is enough to reconstruct
every address involved.
*/
package swap
