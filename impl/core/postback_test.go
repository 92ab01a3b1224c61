package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DriveLine/entity"
)

func postbackEvent(sender, payload string) entity.InboundEvent {
	return entity.InboundEvent{SenderId: sender, Kind: entity.Postback, Payload: payload}
}

func TestPostback_DetailsRendersSpecSheet(t *testing.T) {
	h := newHarness(t)

	h.core.HandleBatch(context.Background(), []entity.InboundEvent{
		postbackEvent("u1", "DETAILS_car_xpander_gls"),
	})

	require.Len(t, h.channel.texts, 1)
	assert.Contains(t, h.channel.texts[0], "Mitsubishi Xpander GLS")
	assert.Contains(t, h.channel.texts[0], "1,266,000")
	assert.Contains(t, h.channel.texts[0], "1.5L MIVEC")
}

func TestPostback_QuoteUsesDefaults(t *testing.T) {
	h := newHarness(t)

	h.core.HandleBatch(context.Background(), []entity.InboundEvent{
		postbackEvent("u1", "QUOTE_car_xpander_gls"),
	})

	require.Len(t, h.channel.texts, 1)
	assert.Contains(t, h.channel.texts[0], "Downpayment (20%)")
	assert.Contains(t, h.channel.texts[0], "253,200")
	assert.Contains(t, h.channel.texts[0], "21,100")

	// Quote is followed by next-step quick replies.
	require.Len(t, h.channel.quick, 1)
}

func TestPostback_ShowServicesSendsGallery(t *testing.T) {
	h := newHarness(t)

	h.core.HandleBatch(context.Background(), []entity.InboundEvent{
		postbackEvent("u1", "SHOW_SERVICES"),
	})

	require.Len(t, h.channel.carousels, 1)
	cards := h.channel.carousels[0]
	require.Len(t, cards, 4)
	for _, card := range cards {
		require.Len(t, card.Buttons, 3)
		assert.Contains(t, card.Buttons[0].Payload, "DETAILS_")
		assert.Contains(t, card.Buttons[1].Payload, "QUOTE_")
		assert.Contains(t, card.Buttons[2].Payload, "TEST_DRIVE_")
	}
}

func TestPostback_TestDriveStartsGuidedFlow(t *testing.T) {
	h := newHarness(t, entity.AiAnswer{Content: "Great choice! What date works for you?"})

	h.core.HandleBatch(context.Background(), []entity.InboundEvent{
		postbackEvent("u1", "TEST_DRIVE_car_xpander_gls"),
	})

	require.Equal(t, 1, h.ass.calls)
	require.Len(t, h.channel.texts, 1)
	assert.Contains(t, h.channel.texts[0], "What date works for you")
}

func TestPostback_UnknownCarIsIgnored(t *testing.T) {
	h := newHarness(t)

	h.core.HandleBatch(context.Background(), []entity.InboundEvent{
		postbackEvent("u1", "DETAILS_car_imaginary"),
	})

	assert.Empty(t, h.channel.texts)
	assert.Empty(t, h.channel.carousels)
}

func TestPostback_UnknownPayloadIsIgnored(t *testing.T) {
	h := newHarness(t)

	h.core.HandleBatch(context.Background(), []entity.InboundEvent{
		postbackEvent("u1", "SOMETHING_ELSE"),
	})

	assert.Empty(t, h.channel.texts)
	assert.Zero(t, h.ass.calls)
}
