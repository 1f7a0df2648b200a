package model

// Product represents a catalog item held by the in-memory product store.
// Prices are plain float64 values because this catalog is demo data; a
// real payment flow would use integer cents.
//
// Fields:
//  ID          – opaque unique identifier (uuid).
//  Name        – display name, used as the listing sort key.
//  Description – free text.
//  Price       – unit price.
//  Stock       – units available.
//  Tags        – free-form labels for the storefront UI.
type Product struct {
    ID          string   `json:"id"`
    Name        string   `json:"name"`
    Description string   `json:"description"`
    Price       float64  `json:"price"`
    Stock       int      `json:"stock"`
    Tags        []string `json:"tags"`
}
