// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package progcache caches parsed programs by the hash of their source text.
package progcache

import (
	"encoding/hex"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/crypto/sha3"

	"github.com/probechain/quill/lang/ast"
	"github.com/probechain/quill/lang/parser"
	"github.com/probechain/quill/log"
)

// key identifies a parse: the source hash and whether comments were kept.
type key struct {
	hash     [32]byte
	comments bool
}

func keyOf(src string, keepComments bool) key {
	return key{hash: sha3.Sum256([]byte(src)), comments: keepComments}
}

// Cache is an ARC cache of parse results. ASTs are immutable, so a cached
// program may be handed to any number of callers. A nil or zero-sized Cache
// parses every time.
type Cache struct {
	programs *lru.ARCCache // key -> []ast.Node

	hits   uint64
	misses uint64
	log    log.Logger
}

// New creates a cache holding up to size programs. A size of zero or less
// disables caching.
func New(size int) (*Cache, error) {
	c := &Cache{log: log.New("pkg", "progcache")}
	if size <= 0 {
		return c, nil
	}
	programs, err := lru.NewARC(size)
	if err != nil {
		return nil, err
	}
	c.programs = programs
	return c, nil
}

// Parse returns the parsed form of src, from the cache when possible. Failed
// parses are not cached.
func (c *Cache) Parse(src string, keepComments bool) ([]ast.Node, error) {
	var opts []parser.Option
	if keepComments {
		opts = append(opts, parser.KeepComments())
	}
	if c == nil || c.programs == nil {
		return parser.Parse(src, opts...)
	}
	k := keyOf(src, keepComments)
	if prog, ok := c.programs.Get(k); ok {
		atomic.AddUint64(&c.hits, 1)
		c.log.Trace("Program cache hit", "hash", shortHash(k.hash), "comments", keepComments)
		return prog.([]ast.Node), nil
	}
	atomic.AddUint64(&c.misses, 1)
	prog, err := parser.Parse(src, opts...)
	if err != nil {
		return nil, err
	}
	c.programs.Add(k, prog)
	c.log.Trace("Program cache miss", "hash", shortHash(k.hash), "comments", keepComments, "statements", len(prog))
	return prog, nil
}

// Len returns the number of cached programs.
func (c *Cache) Len() int {
	if c == nil || c.programs == nil {
		return 0
	}
	return c.programs.Len()
}

// Stats returns the hit and miss counts so far.
func (c *Cache) Stats() (hits, misses uint64) {
	if c == nil {
		return 0, 0
	}
	return atomic.LoadUint64(&c.hits), atomic.LoadUint64(&c.misses)
}

func shortHash(h [32]byte) string {
	return hex.EncodeToString(h[:4])
}
