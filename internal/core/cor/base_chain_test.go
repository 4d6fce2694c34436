// Copyright 2025 Map My Vid Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cor_test

import (
	"context"
	"errors"
	"testing"

	"github.com/zeebo/assert"

	"github.com/mapmyvid/map-my-vid-go/internal/core/cor"
)

// appendCommand tags its input string and pipes the result onward through the
// default CtxIn/CtxOut keys.
type appendCommand struct {
	cor.BaseCommand
	suffix string
}

func newAppendCommand(name, suffix string) *appendCommand {
	out := &appendCommand{suffix: suffix}
	out.BaseCommand = *cor.NewBaseCommand(name)
	return out
}

func (c *appendCommand) Execute(context cor.Context) {
	in := context.Get(c.GetInputParam()).(string)
	context.Add(c.GetOutputParam(), in+c.suffix)
}

// failingCommand records an error and produces no output.
type failingCommand struct {
	cor.BaseCommand
}

func newFailingCommand(name string) *failingCommand {
	out := &failingCommand{}
	out.BaseCommand = *cor.NewBaseCommand(name)
	return out
}

func (c *failingCommand) Execute(context cor.Context) {
	context.AddError(c.GetName(), errors.New("boom"))
}

func chainContext(in string) cor.Context {
	ctx := cor.NewBaseContext()
	ctx.SetContext(context.Background())
	ctx.Add(cor.CtxIn, in)
	return ctx
}

// TestChainPipesOutputToInput verifies each command's CtxOut value becomes
// the next command's CtxIn.
func TestChainPipesOutputToInput(t *testing.T) {
	chain := cor.NewBaseChain("pipe")
	chain.AddCommand(newAppendCommand("first", "-a"))
	chain.AddCommand(newAppendCommand("second", "-b"))

	ctx := chainContext("seed")
	chain.Execute(ctx)

	assert.False(t, ctx.HasErrors())
	assert.Equal(t, "seed-a-b", ctx.Get(cor.CtxIn))
	assert.Nil(t, ctx.Get(cor.CtxOut))
}

// newKeyedAppendCommand reads and writes named context keys instead of the
// default piping keys, the way commands with side-channel inputs do.
func newKeyedAppendCommand(name, suffix, inKey, outKey string) *appendCommand {
	out := newAppendCommand(name, suffix)
	out.InputParamName = inKey
	out.OutputParamName = outKey
	return out
}

// TestChainStopsOnFailure verifies the default chain halts at the first
// command that records an error.
func TestChainStopsOnFailure(t *testing.T) {
	chain := cor.NewBaseChain("halt")
	chain.AddCommand(newFailingCommand("broken"))
	chain.AddCommand(newKeyedAppendCommand("after", "-x", "__SEED__", "__RESULT__"))

	ctx := chainContext("seed")
	ctx.Add("__SEED__", "seed")
	chain.Execute(ctx)

	assert.True(t, ctx.HasErrors())
	assert.NotNil(t, ctx.GetErrors()["broken"])
	// The second command never ran.
	assert.Nil(t, ctx.Get("__RESULT__"))
}

// TestChainContinueOnFailure verifies later commands still run when the chain
// is built to tolerate failures.
func TestChainContinueOnFailure(t *testing.T) {
	chain := cor.NewBaseChain("tolerant").ContinueOnFailure(true)
	chain.AddCommand(newFailingCommand("broken"))
	chain.AddCommand(newKeyedAppendCommand("after", "-x", "__SEED__", "__RESULT__"))

	ctx := chainContext("seed")
	ctx.Add("__SEED__", "seed")
	chain.Execute(ctx)

	assert.True(t, ctx.HasErrors())
	assert.Equal(t, "seed-x", ctx.Get("__RESULT__"))
}

// TestChainSkipsNonExecutableCommand verifies a command whose input is absent
// is skipped without failing the chain.
func TestChainSkipsNonExecutableCommand(t *testing.T) {
	chain := cor.NewBaseChain("skip")
	chain.AddCommand(newAppendCommand("needs-input", "-x"))

	ctx := cor.NewBaseContext()
	ctx.SetContext(context.Background())
	chain.Execute(ctx)

	assert.False(t, ctx.HasErrors())
	assert.Nil(t, ctx.Get(cor.CtxIn))
}

// TestCommandParamDefaults verifies the default piping keys and their
// overrides.
func TestCommandParamDefaults(t *testing.T) {
	command := cor.NewBaseCommand("plain")
	assert.Equal(t, cor.CtxIn, command.GetInputParam())
	assert.Equal(t, cor.CtxOut, command.GetOutputParam())

	command.InputParamName = "__CUSTOM_IN__"
	command.OutputParamName = "__CUSTOM_OUT__"
	assert.Equal(t, "__CUSTOM_IN__", command.GetInputParam())
	assert.Equal(t, "__CUSTOM_OUT__", command.GetOutputParam())
}
