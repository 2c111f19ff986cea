package classifier

import "strings"

// CategoryOther is the catch-all for names no rule matches.
const CategoryOther = "その他"

type rule struct {
	category string
	keywords []string
}

// Rules are checked in order and the first match wins, so the more specific
// categories (Tシャツ before シャツ, カットソー before トップス) must stay
// ahead of the generic ones. The order is part of the contract.
var rules = []rule{
	{"Tシャツ", []string{"tシャツ", "t-shirt", "ティーシャツ", "tee"}},
	{"カットソー", []string{"カットソー", "cut and sewn"}},
	{"シャツ", []string{"シャツ", "shirt", "ブラウス", "blouse"}},
	{"ニット", []string{"ニット", "knit", "セーター", "sweater", "カーディガン"}},
	{"パンツ", []string{"パンツ", "pants", "ズボン", "トラウザー", "スラックス", "ジーンズ", "デニム"}},
	{"スカート", []string{"スカート", "skirt"}},
	{"ワンピース", []string{"ワンピース", "dress", "ドレス"}},
	{"ジャケット", []string{"ジャケット", "jacket", "ブルゾン"}},
	{"コート", []string{"コート", "coat"}},
	{"アウター", []string{"アウター", "パーカー", "フーディー", "ウィンドブレーカー"}},
	{"バッグ", []string{"バッグ", "bag", "かばん", "鞄", "リュック", "トート"}},
	{"シューズ", []string{"シューズ", "shoes", "靴", "スニーカー", "ブーツ", "サンダル"}},
	{"財布", []string{"財布", "wallet", "ウォレット"}},
	{"ベルト", []string{"ベルト", "belt"}},
	{"帽子", []string{"帽子", "キャップ", "cap", "ハット", "hat"}},
	{"アクセサリー", []string{"アクセサリー", "accessory", "ネックレス", "ブレスレット", "リング", "ピアス"}},
	{"トップス", []string{"トップス", "tops"}},
}

// Classify maps a product name to its category. Pure function: the same
// name always yields the same category.
func Classify(productName string) string {
	name := strings.ToLower(productName)

	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(name, kw) {
				return r.category
			}
		}
	}

	return CategoryOther
}

// Categories returns every category Classify can produce, catch-all last.
func Categories() []string {
	out := make([]string, 0, len(rules)+1)
	for _, r := range rules {
		out = append(out, r.category)
	}

	return append(out, CategoryOther)
}
