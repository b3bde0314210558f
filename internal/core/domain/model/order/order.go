package order

import (
	"errors"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrItemsAreRequired is returned when attempting to create an order without items.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")

	// ErrOrderDateIsRequired is returned when restoring an order without its creation date.
	ErrOrderDateIsRequired = errs.NewValueIsRequiredError("orderDate")
)

// initialVersion is the aggregate version assigned at creation.
// Persistence adapters use the version for optimistic concurrency checks.
const initialVersion = 1

// Order represents a purchase order in the system. It is the aggregate root
// that owns its item collection exclusively and enforces all invariants over
// itself and its items: no other component mutates an Item once attached.
//
// Order follows these invariants:
//   - Must have valid order and user identifiers
//   - The item collection is never empty; insertion order is preserved
//   - Every currency amount is non-negative
//   - The order-level discount never exceeds the post-item-discount total
//   - Status only changes along the transitions defined by the status table
//   - All currency values carry two-decimal precision after rounding
//   - Can only be created through the NewOrder constructor
//
// Items may only be added, removed, or quantity-updated while the order is
// Pending. The order-level discount is deliberately not gated by status and
// may be updated at any point, subject to the total-amount ceiling.
//
// The Order struct uses private fields to ensure encapsulation; accessors
// return copies so callers cannot corrupt internal state through a returned
// reference.
type Order struct {
	// id is the immutable unique identifier for the order
	id kernel.UUID

	// userID is the immutable owner reference
	userID kernel.UUID

	// orderDate is the creation instant, set once at construction
	orderDate time.Time

	// status represents the current state in the order lifecycle
	status Status

	// items is the non-empty ordered collection of lines owned by the order
	items []Item

	// discountAmount is the order-level discount subtracted from the total
	discountAmount kernel.Money

	// version supports optimistic concurrency control at the storage boundary
	version int

	// guard ensures the order was created via NewOrder
	guard guard.ConstructorGuard
}

// NewOrder creates a new Order with validation. This is the only way to
// create a valid Order, ensuring all business invariants are maintained.
//
// Validation runs in this sequence: identity fields present, items
// non-empty, discount rounded and non-negative, discount not exceeding the
// total computed from the items.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - userID: Identifier of the owning user (must be valid UUID)
//   - items: Lines produced by the order composer (must be non-empty)
//   - discountAmount: Order-level discount; pass kernel.ZeroMoney() when absent
//
// Returns:
//   - *Order: The created order if all validations pass
//   - error: Validation error if any parameter is invalid
//
// The items slice is defensively copied, so later external mutation of the
// caller's slice cannot affect aggregate state. Status is initialized to
// Pending and orderDate to the creation instant.
//
// Example:
//
//	item, _ := order.NewItem(itemID, productID, warehouseID, 2, price, lineDiscount)
//	o, err := order.NewOrder(kernel.NewUUID(), userID, []order.Item{item}, kernel.ZeroMoney())
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(id kernel.UUID, userID kernel.UUID, items []Item, discountAmount kernel.Money) (*Order, error) {
	order := &Order{
		status:    Pending,
		orderDate: time.Now(),
		version:   initialVersion,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(id),
		order.setUserID(userID),
		order.setItems(items),
		order.setDiscountAmount(discountAmount),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage.
// Unlike NewOrder which starts fresh orders in Pending status, this
// constructor restores an order to its previously persisted state including
// status, creation date, and aggregate version.
//
// The restored order behaves identically to one created through normal
// domain operations; all structural invariants are re-validated.
func RestoreOrder(
	id kernel.UUID,
	userID kernel.UUID,
	orderDate time.Time,
	status Status,
	items []Item,
	discountAmount kernel.Money,
	version int,
) (*Order, error) {
	order := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(id),
		order.setUserID(userID),
		order.setOrderDate(orderDate),
		order.setStatus(status),
		order.setItems(items),
		order.setDiscountAmount(discountAmount),
		order.setVersion(version),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed through NewOrder.
// This prevents bypassing validation by directly instantiating the struct and
// should be called when reconstructing orders from persistence.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers only.
// Two orders with the same ID but different items, status, or discounts are
// considered equal. This identity-based semantic is deliberate: aggregates
// are compared by identity, not by structure.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// Clone produces a new aggregate instance with identical field values.
// The item collection is copied, so no mutable state is shared between the
// original and the clone: mutating one never affects the other.
func (o *Order) Clone() *Order {
	items := make([]Item, len(o.items))
	copy(items, o.items)

	return &Order{
		id:             o.id,
		userID:         o.userID,
		orderDate:      o.orderDate,
		status:         o.status,
		items:          items,
		discountAmount: o.discountAmount,
		version:        o.version,
		guard:          guard.NewConstructorGuard(),
	}
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// UserID returns the identifier of the owning user.
func (o *Order) UserID() kernel.UUID {
	return o.userID
}

// OrderDate returns the creation instant of the order.
func (o *Order) OrderDate() time.Time {
	return o.orderDate
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Version returns the aggregate version used for optimistic concurrency
// checks by persistence adapters.
func (o *Order) Version() int {
	return o.version
}

// Items returns a copy of the order's item collection in insertion order.
// Mutating the returned slice never affects aggregate state.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// DiscountAmount returns the order-level discount.
func (o *Order) DiscountAmount() kernel.Money {
	return o.discountAmount
}

// RawSubtotal returns the sum over items of price multiplied by quantity,
// rounded to two decimal places after every intermediate sum.
func (o *Order) RawSubtotal() kernel.Money {
	subtotal := kernel.ZeroMoney()
	for _, item := range o.items {
		subtotal = subtotal.Add(item.Subtotal())
	}
	return subtotal
}

// ItemDiscountsTotal returns the sum of all fixed line-level discounts,
// rounded to two decimal places. Line discounts are not scaled by quantity.
func (o *Order) ItemDiscountsTotal() kernel.Money {
	total := kernel.ZeroMoney()
	for _, item := range o.items {
		total = total.Add(item.DiscountAmount())
	}
	return total
}

// TotalAmount returns the raw subtotal minus the item discounts.
// This is the ceiling against which the order-level discount is validated.
func (o *Order) TotalAmount() kernel.Money {
	return totalAmountOf(o.items)
}

// FinalAmount returns the total amount minus the order-level discount.
// This is the amount charged to the customer.
func (o *Order) FinalAmount() kernel.Money {
	return o.TotalAmount().Sub(o.discountAmount)
}

// UpdateStatus transitions the order to the requested status.
//
// The transition must be allowed by the status table; otherwise the method
// fails with an error naming both the current and the requested state and
// the status is left unchanged. The state is replaced atomically: no partial
// update is observable.
//
// Example:
//
//	if err := o.UpdateStatus(order.Confirmed); err != nil {
//	    // Invalid transition, status unchanged
//	}
func (o *Order) UpdateStatus(next Status) error {
	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// AddItem appends a copy of the item to the order.
//
// Business rules:
//   - The order must be in Pending status
//   - The item id must not collide with an existing line
//   - The existing order-level discount must still fit under the total
//     computed over the enlarged item set
//
// The discount check runs against a lookahead total before the stored
// collection is touched, so a rejected addition leaves no observable
// intermediate state.
func (o *Order) AddItem(item Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	if err := o.ensureModifiable(); err != nil {
		return err
	}

	if _, found := o.findItem(item.ID()); found {
		return errs.NewValueIsInvalidErrorWithCause(
			"orderItemId",
			fmt.Errorf("duplicate order item id %s", item.ID()),
		)
	}

	candidate := make([]Item, 0, len(o.items)+1)
	candidate = append(candidate, o.items...)
	candidate = append(candidate, item)

	if err := o.ensureDiscountFits(candidate); err != nil {
		return err
	}

	o.items = candidate
	return nil
}

// RemoveItem removes the line identified by itemID from the order.
//
// Business rules:
//   - The order must be in Pending status
//   - At least one item must remain after removal
//   - The item id must exist
//   - The existing order-level discount must still fit under the total
//     computed over the reduced item set
//
// State is left unchanged on any failure; removal is committed only after
// all checks pass.
func (o *Order) RemoveItem(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	if err := o.ensureModifiable(); err != nil {
		return err
	}

	if len(o.items) == 1 {
		return errs.NewValueIsInvalidErrorWithCause(
			"items",
			errors.New("cannot remove last item"),
		)
	}

	index, found := o.findItem(itemID)
	if !found {
		return errs.NewObjectNotFoundError("orderItemId", itemID.String())
	}

	candidate := make([]Item, 0, len(o.items)-1)
	candidate = append(candidate, o.items[:index]...)
	candidate = append(candidate, o.items[index+1:]...)

	if err := o.ensureDiscountFits(candidate); err != nil {
		return err
	}

	o.items = candidate
	return nil
}

// UpdateItemQuantity changes the quantity of the line identified by itemID.
//
// Business rules:
//   - The order must be in Pending status
//   - The new quantity must be positive
//   - The item id must exist
//   - The existing order-level discount must still fit under the total
//     computed with the new quantity
//
// The quantity is committed only after the lookahead discount check passes.
func (o *Order) UpdateItemQuantity(itemID kernel.UUID, newQuantity int) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	if err := o.ensureModifiable(); err != nil {
		return err
	}

	if newQuantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not greater than 0", newQuantity),
		)
	}

	index, found := o.findItem(itemID)
	if !found {
		return errs.NewObjectNotFoundError("orderItemId", itemID.String())
	}

	candidate := make([]Item, len(o.items))
	copy(candidate, o.items)
	candidate[index].quantity = newQuantity

	if err := o.ensureDiscountFits(candidate); err != nil {
		return err
	}

	o.items = candidate
	return nil
}

// UpdateDiscountAmount replaces the order-level discount.
//
// The amount must be non-negative and must not exceed the current total.
// On success the discount is replaced atomically; on failure state is left
// unchanged. Discount updates are deliberately not gated by the
// Pending-only item-modification rule.
func (o *Order) UpdateDiscountAmount(amount kernel.Money) error {
	return o.setDiscountAmount(amount)
}

// ensureModifiable rejects item mutation outside the Pending status.
func (o *Order) ensureModifiable() error {
	if !o.status.CanModifyItems() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("cannot modify items in current status %s", o.status),
		)
	}
	return nil
}

// ensureDiscountFits validates the current order-level discount against the
// total computed over a hypothetical item set.
func (o *Order) ensureDiscountFits(items []Item) error {
	if total := totalAmountOf(items); o.discountAmount.GreaterThan(total) {
		return errDiscountExceedsTotal(o.discountAmount, total)
	}
	return nil
}

// findItem returns the index of the line with the given id.
func (o *Order) findItem(itemID kernel.UUID) (int, bool) {
	for i, item := range o.items {
		if item.ID().IsEqual(itemID) {
			return i, true
		}
	}
	return 0, false
}

// totalAmountOf computes subtotal minus item discounts over an arbitrary
// item set, rounding after every intermediate sum. Used both for the stored
// collection and for lookahead validation of pending mutations.
func totalAmountOf(items []Item) kernel.Money {
	subtotal := kernel.ZeroMoney()
	discounts := kernel.ZeroMoney()
	for _, item := range items {
		subtotal = subtotal.Add(item.Subtotal())
		discounts = discounts.Add(item.DiscountAmount())
	}
	return subtotal.Sub(discounts)
}

// errDiscountExceedsTotal builds the failure for a discount above the
// order's total amount ceiling.
func errDiscountExceedsTotal(discount kernel.Money, total kernel.Money) error {
	return errs.NewValueIsOutOfRangeErrorWithCause(
		"discountAmount", discount.String(), "0.00", total.String(),
		errors.New("discount exceeds total amount"),
	)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	o.userID = userID
	return nil
}

func (o *Order) setOrderDate(orderDate time.Time) error {
	if orderDate.IsZero() {
		return ErrOrderDateIsRequired
	}
	o.orderDate = orderDate
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

// setItems validates and defensively copies the item collection.
// Items must be non-empty, individually valid, and carry unique ids.
func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	seen := make(map[kernel.UUID]struct{}, len(items))
	copied := make([]Item, len(items))
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if _, ok := seen[item.ID()]; ok {
			return errs.NewValueIsInvalidErrorWithCause(
				"orderItemId",
				fmt.Errorf("duplicate order item id %s", item.ID()),
			)
		}
		seen[item.ID()] = struct{}{}
		copied[i] = item
	}

	o.items = copied
	return nil
}

// setDiscountAmount validates the order-level discount against sign and the
// total-amount ceiling before committing it. The items must already be set;
// when they are absent the emptiness failure is reported by setItems and the
// ceiling check is skipped here.
func (o *Order) setDiscountAmount(discount kernel.Money) error {
	if err := discount.Validate(); err != nil {
		return err
	}

	if discount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(
			"discountAmount",
			fmt.Errorf("%s is negative", discount),
		)
	}

	if len(o.items) > 0 {
		if total := totalAmountOf(o.items); discount.GreaterThan(total) {
			return errDiscountExceedsTotal(discount, total)
		}
	}

	o.discountAmount = discount
	return nil
}

func (o *Order) setVersion(version int) error {
	if version < initialVersion {
		return errs.NewVersionIsInvalidErrorWithCause(
			"order",
			fmt.Errorf("%d is not a valid aggregate version", version),
		)
	}
	o.version = version
	return nil
}
