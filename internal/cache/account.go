// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cache holds the process-local, read-mostly view of accounts.
//
// The cache stores copies, so a caller mutating a returned account never
// changes the cached state. It has no eviction or TTL: entries change only
// through Add, Remove and Reset.
package cache

import (
	"cmp"
	"slices"
	"sync"

	"github.com/MKhiriev/go-account-keeper/models"
)

// AccountCache is a concurrency-safe map of accounts keyed by id.
// The zero value is not usable; construct it with NewAccountCache.
type AccountCache struct {
	mu    sync.RWMutex
	items map[uint64]models.Account
}

func NewAccountCache() *AccountCache {
	return &AccountCache{items: make(map[uint64]models.Account)}
}

// Add inserts or replaces the entry for account.ID.
// Accounts without an id were never persisted and are ignored.
func (c *AccountCache) Add(account models.Account) {
	if account.ID == 0 {
		return
	}

	c.mu.Lock()
	c.items[account.ID] = account.Clone()
	c.mu.Unlock()
}

// AddIfAbsent inserts account only when no entry for account.ID exists and
// reports whether it did. It fills the cache from a read without replacing
// a copy a concurrent write already put there.
func (c *AccountCache) AddIfAbsent(account models.Account) bool {
	if account.ID == 0 {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[account.ID]; ok {
		return false
	}
	c.items[account.ID] = account.Clone()
	return true
}

// Remove drops the entry for id, if present.
func (c *AccountCache) Remove(id uint64) {
	c.mu.Lock()
	delete(c.items, id)
	c.mu.Unlock()
}

// Get returns a copy of the entry for id.
func (c *AccountCache) Get(id uint64) (models.Account, bool) {
	c.mu.RLock()
	account, ok := c.items[id]
	c.mu.RUnlock()

	if !ok {
		return models.Account{}, false
	}
	return account.Clone(), true
}

// QueryByFilter returns copies of every entry matching filter, ordered by id.
// A nil filter matches everything.
func (c *AccountCache) QueryByFilter(filter func(models.Account) bool) []models.Account {
	c.mu.RLock()
	result := make([]models.Account, 0, len(c.items))
	for _, account := range c.items {
		if filter == nil || filter(account) {
			result = append(result, account.Clone())
		}
	}
	c.mu.RUnlock()

	slices.SortFunc(result, func(a, b models.Account) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return result
}

// GetByUsername returns the entry whose username equals username exactly.
// When several entries match, the one with the lowest id wins.
func (c *AccountCache) GetByUsername(username string) (models.Account, bool) {
	matches := c.QueryByFilter(func(a models.Account) bool {
		return a.Username != nil && *a.Username == username
	})
	if len(matches) == 0 {
		return models.Account{}, false
	}
	return matches[0], true
}

// Len returns the number of cached accounts.
func (c *AccountCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Reset drops every entry.
func (c *AccountCache) Reset() {
	c.mu.Lock()
	c.items = make(map[uint64]models.Account)
	c.mu.Unlock()
}
