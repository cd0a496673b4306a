// Package stores holds the per-phone challenge store. One challenge per
// phone; issuing a new one overwrites the old outright.
package stores
