// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Bookmark is a named, persisted snippet with a content-derived id.
type Bookmark struct {
	// ID is the content hash of Content. Bookmarks with identical content
	// share an ID; Name is the uniqueness key.
	ID string `json:"id" yaml:"id"`

	// Name is the user-chosen unique name.
	Name string `json:"name" yaml:"name"`

	// Language is the source language the snippet was captured from.
	Language Language `json:"language" yaml:"language"`

	// Content holds the cleaned lines in their original order.
	Content []string `json:"content" yaml:"content"`

	// CreatedAt records when the bookmark was stored.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
