// Copyright 2025 Vitor Carvalho. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/lightningspirit/wp-redirects/blob/master/LICENSE.txt.

package redirects

import (
	"errors"
)

var (
	ErrInvalidRule   = errors.New("invalid rule")
	ErrRuleNotFound  = errors.New("rule not found")
	ErrInvalidConfig = errors.New("invalid config")
)
