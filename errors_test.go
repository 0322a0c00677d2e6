// Copyright 2017 Hajime Hoshi
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mp3

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInvalidDataErrorMessage(t *testing.T) {
	err := &InvalidDataError{Reason: "bad sync"}
	require.Contains(t, err.Error(), "bad sync")

	var target *InvalidDataError
	require.True(t, errors.As(error(err), &target))
}

func TestUnsupportedErrorMessage(t *testing.T) {
	err := &UnsupportedError{Reason: "layer II"}
	require.Contains(t, err.Error(), "layer II")

	var target *UnsupportedError
	require.True(t, errors.As(error(err), &target))
}
