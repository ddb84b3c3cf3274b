// Package models defines the core domain models for the household ledger.
//
// The durable records are Member, Expense, Settlement and Chore. Obligation
// and Debt are derived views: they are recomputed from unsettled Expenses on
// demand and never stored, so the set of unsettled Expenses is always the
// single source of truth for who owes whom.
//
// Relationships use ID strings rather than pointers to avoid circular
// references between records.
package models
