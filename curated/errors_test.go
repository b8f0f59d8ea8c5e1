// This file is part of Retrobridge.
//
// Retrobridge is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Retrobridge is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Retrobridge.  If not, see <https://www.gnu.org/licenses/>.

package curated_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jetsetilly/retrobridge/curated"
	"github.com/jetsetilly/retrobridge/test"
)

const testError = "test error: %s"
const wrapError = "wrap: %v"

func TestDuplicateErrors(t *testing.T) {
	e := curated.Errorf(testError, "foo")
	test.ExpectEquality(t, e.Error(), "test error: foo")

	// packing errors of the same type next to each other causes
	// one of them to be dropped
	f := curated.Errorf(testError, e)
	test.ExpectEquality(t, f.Error(), "test error: foo")
}

func TestIs(t *testing.T) {
	e := curated.Errorf(testError, "foo")
	test.ExpectSuccess(t, curated.IsAny(e))
	test.ExpectSuccess(t, curated.Is(e, testError))
	test.ExpectFailure(t, curated.Is(e, wrapError))

	f := curated.Errorf(wrapError, e)
	test.ExpectFailure(t, curated.Is(f, testError))
	test.ExpectSuccess(t, curated.Has(f, testError))
	test.ExpectSuccess(t, curated.Has(f, wrapError))

	// uncurated errors
	u := errors.New("plain")
	test.ExpectFailure(t, curated.IsAny(u))
	test.ExpectFailure(t, curated.Has(u, testError))
	test.ExpectFailure(t, curated.IsAny(nil))
}

func TestStandardWrapping(t *testing.T) {
	e := curated.Errorf(testError, "foo")

	// a curated error wrapped with %w is still recognised
	w := fmt.Errorf("context: %w", e)
	test.ExpectSuccess(t, curated.IsAny(w))
	test.ExpectSuccess(t, curated.Is(w, testError))

	// errors.Is() sees through curated errors
	sentinel := errors.New("sentinel")
	c := curated.Errorf(wrapError, sentinel)
	test.ExpectSuccess(t, errors.Is(c, sentinel))
}
