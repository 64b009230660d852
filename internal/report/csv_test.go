package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPostingNumbers(t *testing.T) {
	raw := "\"Артикул\";\"Наименование товара\";\"Номер отправления\";\"Статус\"\n" +
		"\"A-1\";\"Чайник\";\"12345-0001-1\";\"Доставлен\"\n" +
		"\n" +
		"\"A-2\";\"Кружка\";\"12345-0002-1\";\"Доставлен\"\n" +
		"\"A-3\";\"Ложка\";\"\";\"Доставлен\"\n" +
		"\"A-4\";\"Вилка\";\"12345-0003-1\";\"Доставлен\"\n"

	numbers := ExtractPostingNumbers(raw)

	assert.Equal(t, []string{"12345-0001-1", "12345-0002-1", "12345-0003-1"}, numbers)
}

func TestExtractPostingNumbersSkipsRepeatedHeader(t *testing.T) {
	raw := "\"Артикул\";\"Номер отправления\"\n" +
		"\"A-1\";\"111-1\"\n" +
		"\"Артикул\";\"Номер отправления\"\n" +
		"\"A-2\";\"222-1\"\n"

	numbers := ExtractPostingNumbers(raw)

	assert.Equal(t, []string{"111-1", "222-1"}, numbers)
}

func TestExtractPostingNumbersShortRow(t *testing.T) {
	raw := "\"Артикул\";\"Цена\";\"Номер отправления\"\n" +
		"\"A-1\";\"100\"\n" +
		"\"A-2\";\"200\";\"333-1\"\n"

	numbers := ExtractPostingNumbers(raw)

	assert.Equal(t, []string{"333-1"}, numbers)
}

func TestExtractPostingNumbersNoHeader(t *testing.T) {
	raw := "\"A-1\";\"Чайник\";\"12345-0001-1\"\n" +
		"\"A-2\";\"Кружка\";\"12345-0002-1\"\n"

	numbers := ExtractPostingNumbers(raw)

	assert.Empty(t, numbers)
}

func TestExtractPostingNumbersEmptyInput(t *testing.T) {
	assert.Empty(t, ExtractPostingNumbers(""))
	assert.Empty(t, ExtractPostingNumbers("\n\n"))
}
