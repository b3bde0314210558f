// Package order implements the purchase order aggregate: the Order root
// entity, the Item lines it owns exclusively, and the Status state machine
// governing lifecycle transitions.
//
// All construction goes through validating factories (NewOrder, NewItem);
// every mutator re-validates the aggregate invariants before committing the
// change, computing lookahead totals so no invalid intermediate state is
// ever observable. Monetary amounts are kernel.Money values rounded to two
// decimal places after every intermediate sum.
//
// The aggregate is a synchronous in-memory value: it holds no locks and is
// not safe for concurrent mutation of the same instance. Serializing access
// per order id is the responsibility of the storage boundary.
package order
