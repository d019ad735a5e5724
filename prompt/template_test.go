package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astock/market"
)

func fullFields() Fields {
	return Fields{
		FieldDate:                "2024-06-03",
		FieldPositions:           `{"CASH": 5000}`,
		FieldYesterdayClosePrice: "",
		FieldTodayBuyPrice:       "",
		FieldYesterdayProfit:     "{}",
		FieldStopSignal:          StopSignal,
	}
}

func TestTemplateValidateFailsFast(t *testing.T) {
	tpl, err := TemplateFor(market.CN)
	require.NoError(t, err)
	assert.Equal(t, RequiredFields, tpl.Fields())

	vars := fullFields()
	delete(vars, FieldYesterdayProfit)
	delete(vars, FieldDate)

	_, err = tpl.Render(context.Background(), vars)
	var missing *MissingFieldsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{FieldDate, FieldYesterdayProfit}, missing.Fields)
}

func TestTemplateValuesWithBracesAreLiteral(t *testing.T) {
	tpl, err := TemplateFor(market.CN)
	require.NoError(t, err)

	vars := fullFields()
	vars[FieldPositions] = `{"600519.SH": 100, "CASH": 5000}`
	out, err := tpl.Render(context.Background(), vars)
	require.NoError(t, err)
	assert.Contains(t, out, `{"600519.SH": 100, "CASH": 5000}`)
}

func TestNewTemplateRequiresAllFields(t *testing.T) {
	_, err := NewTemplate(market.CN, "date={date} end={stop_signal}")
	assert.Error(t, err)

	_, err = TemplateFor(market.Market("hk"))
	assert.Error(t, err)
}
