package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/mathkit"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "mathkit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestStore_History(t *testing.T) {
	st := openTemp(t)
	ctx := context.Background()
	for _, line := range []string{"1+1", "2+2", "3+3"} {
		require.NoError(t, st.AddHistory(ctx, line, "ok"))
	}

	entries, err := st.History(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "2+2", entries[0].Line)
	assert.Equal(t, "3+3", entries[1].Line)
	assert.False(t, entries[1].At.IsZero())
}

func TestStore_SaveReplaceDelete(t *testing.T) {
	st := openTemp(t)
	ctx := context.Background()
	require.NoError(t, st.Save(ctx, Definition{Kind: VariableKind, Name: "a", Body: "2"}))
	require.NoError(t, st.Save(ctx, Definition{Kind: VariableKind, Name: "a", Body: "3"}))
	require.NoError(t, st.Save(ctx, Definition{Kind: FunctionKind, Name: "f", Params: []string{"s", "t"}, Body: "s*t"}))

	defs, err := st.Definitions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Definition{
		{Kind: FunctionKind, Name: "f", Params: []string{"s", "t"}, Body: "s*t"},
		{Kind: VariableKind, Name: "a", Body: "3"},
	}, defs)

	require.NoError(t, st.Delete(ctx, VariableKind, "a"))
	defs, err = st.Definitions(ctx)
	require.NoError(t, err)
	assert.Len(t, defs, 1)
}

func TestStore_SetEquations(t *testing.T) {
	st := openTemp(t)
	ctx := context.Background()
	require.NoError(t, st.SetEquations(ctx, []string{"y = x + 1", "y = 2x - 2"}))
	require.NoError(t, st.SetEquations(ctx, []string{"x = 4"}))

	defs, err := st.Definitions(ctx)
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, EquationKind, defs[0].Kind)
	assert.Equal(t, "x = 4", defs[0].Body)
}

func TestStore_Restore(t *testing.T) {
	st := openTemp(t)
	ctx := context.Background()
	require.NoError(t, st.Save(ctx, Definition{Kind: FunctionKind, Name: "f", Params: []string{"t"}, Body: "t^2 + 1"}))
	require.NoError(t, st.Save(ctx, Definition{Kind: VariableKind, Name: "a", Body: "f(2)"}))
	require.NoError(t, st.SetEquations(ctx, []string{"y = x + 1", "y = 2x - 2"}))

	s := mathkit.NewSystem()
	require.NoError(t, st.Restore(ctx, s))
	assert.Len(t, s.UserFunctions(), 1)
	assert.Len(t, s.Equations, 2)

	id, ok := s.LookupVariable("a")
	require.True(t, ok)
	n, err := s.Evaluate(mathkit.Var(id))
	require.NoError(t, err)
	assert.Equal(t, mathkit.N(5), n)
}

func TestStore_RestoreBadDefinition(t *testing.T) {
	st := openTemp(t)
	ctx := context.Background()
	require.NoError(t, st.Save(ctx, Definition{Kind: FunctionKind, Name: "sin", Params: []string{"t"}, Body: "t"}))
	assert.ErrorIs(t, st.Restore(ctx, mathkit.NewSystem()), mathkit.ErrSyntax)
}
