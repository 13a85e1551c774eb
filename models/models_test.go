package models

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"school-backend/auth"
)

func TestDateJSON(t *testing.T) {
	var s Student
	require.NoError(t, json.Unmarshal([]byte(`{"nome_completo":"João Silva","data_nascimento":"2010-05-15"}`), &s))
	require.NotNil(t, s.DataNascimento)
	assert.Equal(t, NewDate(2010, time.May, 15), *s.DataNascimento)

	out, err := json.Marshal(s.DataNascimento)
	require.NoError(t, err)
	assert.JSONEq(t, `"2010-05-15"`, string(out))
}

func TestDateRejectsBadFormat(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"15/05/2010"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`20100515`), &d))
}

func TestDateScan(t *testing.T) {
	cases := map[string]interface{}{
		"time":      time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		"string":    "2024-03-01",
		"bytes":     []byte("2024-03-01"),
		"timestamp": "2024-03-01T00:00:00Z",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			var d Date
			require.NoError(t, d.Scan(src))
			assert.Equal(t, "2024-03-01", d.String())
		})
	}

	var d Date
	assert.Error(t, d.Scan(42))
}

func TestDateValue(t *testing.T) {
	v, err := NewDate(2023, time.December, 31).Value()
	require.NoError(t, err)
	assert.Equal(t, "2023-12-31", v)
}

func TestUserPrepareSaveHashesPassword(t *testing.T) {
	senha := "segredo123"
	u := &User{Senha: &senha}

	require.NoError(t, u.PrepareSave())
	require.NotNil(t, u.Senha)
	assert.True(t, auth.CheckPassword("segredo123", *u.Senha))

	// A submitted value shaped like a hash is still just a password.
	hashed := *u.Senha
	require.NoError(t, u.PrepareSave())
	assert.NotEqual(t, hashed, *u.Senha)
	assert.True(t, auth.CheckPassword(hashed, *u.Senha))

	assert.NoError(t, (&User{}).PrepareSave())
}

func TestUserHasNoGormSaveHook(t *testing.T) {
	// gorm inspects BeforeSave on every model; the HTTP hook must not shadow it.
	_, found := reflect.TypeOf(&User{}).MethodByName("BeforeSave")
	assert.False(t, found)

	var rec interface{} = &User{}
	_, ok := rec.(SavePreparer)
	assert.True(t, ok)
}

func TestUserSanitize(t *testing.T) {
	senha := "x"
	u := &User{Senha: &senha}
	u.Sanitize()

	out, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "senha")
}

func TestMoneyIsJSONNumber(t *testing.T) {
	d := OrderDetail{Discount: decimal.RequireFromString("0.15")}
	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"discount":0.15`)
}
