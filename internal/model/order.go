package model

import "time"

// OrderStatusCreated is the only status orders reach in this system;
// fulfilment states would extend the set.
const OrderStatusCreated = "created"

// CartItem is a single line of a checkout request and of the resulting
// order.  The unit price is taken from the client's cart snapshot; the
// order total is still computed server-side from these lines.
type CartItem struct {
    ProductID string  `json:"productId"`
    Quantity  int     `json:"quantity"`
    UnitPrice float64 `json:"unitPrice"`
}

// Order represents a completed checkout held by the in-memory order store.
//
// Fields:
//  ID           – opaque unique identifier (uuid).
//  UserID       – owner of the order, taken from the access token's subject.
//  Items        – cart lines as submitted at checkout.
//  Total        – sum of quantity × unit price across all lines.
//  Status       – OrderStatusCreated.
//  CreatedAtUTC – checkout timestamp, the per-user listing sort key.
type Order struct {
    ID           string     `json:"id"`
    UserID       string     `json:"userId"`
    Items        []CartItem `json:"items"`
    Total        float64    `json:"total"`
    Status       string     `json:"status"`
    CreatedAtUTC time.Time  `json:"createdAtUtc"`
}
