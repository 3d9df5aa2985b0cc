// Package order provides the Order aggregate of the campus delivery domain.
//
// The package includes:
//   - Order: the aggregate root holding the requester, vendor, drop-off location,
//     line items and lifecycle status of one delivery
//   - LineItem: a value object for one ordered item (quantity and exact decimal price)
//   - Status: the ordered lifecycle enumeration and the tracking progress derived from it
//
// Key business rules:
//   - Orders are created in Pending status with at least one line item and no robot
//   - The identifier is assigned once, by the persistence side of the dispatch service
//   - Status only advances: Pending -> Preparing -> Ready -> InTransit -> Delivered,
//     with Cancelled reachable from any non-terminal status
//   - Status advancement is owned by the dispatch service; the ordering workflow only
//     reads it after creation
package order
