// Package models defines the core domain models for Splitledger.
//
// # Members
//
// A group member is either an account holder or an external guest. Both are
// addressed by a MemberID, a tagged value:
//   - Internal: Ref is the user (account) ID
//   - External: Ref is a guest ID scoped to the group
//
// Balance and settlement code switches on MemberID.Kind. Never build member
// identity from string prefixes.
//
// # Money
//
// Amounts are shopspring decimals held at cent precision. Shares are rounded
// half-up to the cent; see the calculator package for where the residual goes.
//
// # Records
//
//   - Movement: a dated income/expense record owned by one user (the ledger)
//   - SharedExpense: a group expense split equally among participants, backed
//     by exactly one Movement
//   - SettlementRequest: an in-flight "I paid you" declaration for a
//     debtor/creditor pair; its presence means REQUESTED
package models
