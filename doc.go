// Copyright 2016 Maarten Everts. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package goo implements the Goo signature scheme: a zero-knowledge proof
// of knowledge of the factorization of a legacy RSA modulus, carried out
// inside a group of unknown order and turned into a non-interactive
// signature via Fiat-Shamir. See goo_test.go for example usage.
package goo
