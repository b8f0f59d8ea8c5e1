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

package coreopts

import (
	"fmt"
	"slices"
	"strings"
)

// Variable keys.
const (
	KeyRenderer           = "retrobridge_renderer"
	KeyResolution         = "retrobridge_resolution"
	KeyFrameLimit         = "retrobridge_frame_limit"
	KeyCPUDecoder         = "retrobridge_cpu_decoder"
	KeyCoprocessorDecoder = "retrobridge_coprocessor_decoder"
	KeyFenceTimeout       = "retrobridge_fence_timeout"
	KeyFlipCadence        = "retrobridge_flip_cadence"
	KeyContextPool        = "retrobridge_context_pool"
)

// Variable is a core option as presented to the host. The first value is the
// default.
type Variable struct {
	Key    string
	Label  string
	Values []string
}

// Definition returns the variable's label and values in the form expected by
// the host.
func (v Variable) Definition() string {
	return fmt.Sprintf("%s; %s", v.Label, strings.Join(v.Values, "|"))
}

// Default returns the variable's default value.
func (v Variable) Default() string {
	return v.Values[0]
}

// Valid returns true if the value is one of the variable's values.
func (v Variable) Valid(value string) bool {
	return slices.Contains(v.Values, value)
}

var variables = []Variable{
	{KeyRenderer, "Renderer", []string{"opengl", "null"}},
	{KeyResolution, "Internal Resolution", []string{"1280x720", "1920x1080", "2560x1440", "3840x2160"}},
	{KeyFrameLimit, "Frame Limit", []string{"Auto", "Off", "30", "60", "120"}},
	{KeyCPUDecoder, "CPU Decoder", []string{"Recompiler (LLVM)", "Interpreter"}},
	{KeyCoprocessorDecoder, "Coprocessor Decoder", []string{"Recompiler (LLVM)", "Recompiler (ASMJIT)", "Interpreter"}},
	{KeyFenceTimeout, "Frame Fence Timeout (ms)", []string{"4", "1", "2", "8"}},
	{KeyFlipCadence, "Flips Per Frame", []string{"Auto", "1", "2"}},
	{KeyContextPool, "Context Pool Size", []string{"10", "0", "2", "4"}},
}

// Variables returns the list of variables in the order they should be
// presented to the host.
func Variables() []Variable {
	return slices.Clone(variables)
}

// Lookup returns the variable with the key.
func Lookup(key string) (Variable, bool) {
	i := slices.IndexFunc(variables, func(v Variable) bool {
		return v.Key == key
	})
	if i < 0 {
		return Variable{}, false
	}
	return variables[i], true
}
