package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeEnvelope(t *testing.T) {
	b, err := Encode(MsgBuyWeapon, BuyWeapon{Name: "AK-47"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"t":"buy_weapon","p":{"name":"AK-47"}}`, string(b))
}

func TestEncodeRejectsMissingParts(t *testing.T) {
	_, err := Encode("", Empty{})
	assert.Error(t, err)

	_, err = Encode(MsgStart, nil)
	assert.Error(t, err)

	_, err = Encode(MsgState, func() {})
	assert.Error(t, err)
}

func TestStartCarriesEmptyObject(t *testing.T) {
	b, err := Encode(MsgStart, Empty{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"t":"start","p":{}}`, string(b))
}

func TestDecodeInput(t *testing.T) {
	env, err := DecodeEnvelope([]byte(`{"t":"input","p":{"up":true,"aim":true,"ax":12.5,"ay":40,"fire":true}}`))
	require.NoError(t, err)
	assert.Equal(t, MsgInput, env.T)

	in, err := DecodePayload[Input](env)
	require.NoError(t, err)
	assert.Equal(t, Input{Up: true, Aim: true, Ax: 12.5, Ay: 40, Fire: true}, in)
}

func TestDecodeErrors(t *testing.T) {
	_, err := DecodeEnvelope(nil)
	assert.Error(t, err)

	_, err = DecodeEnvelope([]byte(`not json`))
	assert.Error(t, err)

	_, err = DecodeEnvelope([]byte(`{"p":{}}`))
	assert.Error(t, err, "type is required")

	_, err = DecodePayload[BuySkin](Envelope{T: MsgBuySkin})
	assert.Error(t, err, "payload is required")

	_, err = DecodePayload[BuySkin](Envelope{T: MsgBuySkin, P: []byte(`{"weapon":7}`)})
	assert.Error(t, err)
}

func TestStateOmitsNothing(t *testing.T) {
	b, err := Encode(MsgState, State{Phase: "running", Enemies: []EnemySnapshot{}, Bullets: []BulletSnapshot{}})
	require.NoError(t, err)
	env, err := DecodeEnvelope(b)
	require.NoError(t, err)

	st, err := DecodePayload[State](env)
	require.NoError(t, err)
	assert.Equal(t, "running", st.Phase)
	assert.NotNil(t, st.Enemies)
	assert.NotNil(t, st.Bullets)
}
