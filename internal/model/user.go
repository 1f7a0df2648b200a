package model

// Role names carried in the JWT "role" claim.  The set is fixed: a user is
// either an admin or a customer, decided at registration and immutable
// afterwards (there is no role-change endpoint).
const (
    RoleAdmin    = "admin"
    RoleCustomer = "customer"
)

// User represents an identity record held by the in-memory credential
// store.  Records live for the lifetime of the process; a restart loses
// all users.  The json tags are omitted because these structs are used
// internally by the repository layer; handlers define separate response
// types with appropriate JSON tags.
//
// Fields:
//  ID           – opaque unique identifier (uuid), assigned at creation.
//  Email        – unique key, normalized (trimmed, lower-cased) before
//                 storage and lookup.
//  DisplayName  – free text, no uniqueness constraint.
//  Role         – RoleAdmin or RoleCustomer.
//  PasswordHash – bcrypt hash of the registration password; the plaintext
//                 is never stored or logged.
type User struct {
    ID           string
    Email        string
    DisplayName  string
    Role         string
    PasswordHash string
}
