package catalog

import "encoding/json"

// apiCard mirrors the parts of a cardinfo.php result the search uses.
type apiCard struct {
	Name       string         `json:"name"`
	CardPrices []apiCardPrice `json:"card_prices"`
	CardSets   []apiCardSet   `json:"card_sets"`
}

// apiCardPrice keeps the price raw: the API sends strings, but numbers and
// nulls have been seen too.
type apiCardPrice struct {
	TCGPlayerPrice json.RawMessage `json:"tcgplayer_price"`
}

type apiCardSet struct {
	SetName    string `json:"set_name"`
	SetURL     string `json:"set_url"`
	SetEdition string `json:"set_edition"`
}

type apiResponse struct {
	Data json.RawMessage `json:"data"`
}
