package describe

import (
	"fmt"
	"strings"

	"github.com/aminati-ec/catalog-studio/internal/classifier"
	"github.com/aminati-ec/catalog-studio/internal/models"
)

// categoryLead gives each category its own opening fragment so the offline
// copy doesn't read identically across the whole catalog.
var categoryLead = map[string]string{
	"Tシャツ":   "柔らかな肌触りと程よい厚みが魅力のTシャツです。",
	"カットソー":  "一枚でも重ね着でも活躍するカットソーです。",
	"シャツ":    "きちんと感と抜け感を両立するシャツです。",
	"ニット":    "ふんわりとした編み地が心地よいニットです。",
	"パンツ":    "美しいシルエットにこだわったパンツです。",
	"スカート":   "動くたびに揺れるシルエットが美しいスカートです。",
	"ワンピース":  "一枚で着姿が決まるワンピースです。",
	"ジャケット":  "羽織るだけで印象が引き締まるジャケットです。",
	"コート":    "季節の変わり目から本番まで頼れるコートです。",
	"アウター":   "デイリーに活躍する軽快なアウターです。",
	"バッグ":    "日々の持ち物をすっきり収めるバッグです。",
	"シューズ":   "足元から装いを引き立てるシューズです。",
	"財布":     "手に馴染む質感にこだわった財布です。",
	"ベルト":    "コーディネートの引き締め役になるベルトです。",
	"帽子":     "かぶるだけでスタイルが決まる帽子です。",
	"アクセサリー": "さりげなく個性を添えるアクセサリーです。",
	"トップス":   "着回し力の高いトップスです。",
}

// Fallback composes the deterministic local description used when the
// generative service is unavailable. It never fails and never touches the
// network, and always yields a multi-paragraph, non-empty string.
func Fallback(product *models.Product) string {

	category := product.Category
	if category == "" {
		category = classifier.Classify(product.ProductName)
	}

	lead, ok := categoryLead[category]
	if !ok {
		lead = fmt.Sprintf("%sは、上質な素材と洗練されたデザインが特徴的なアイテムです。", product.ProductName)
	} else {
		lead = fmt.Sprintf("%sは、%s", product.ProductName, lead)
	}

	paragraphs := []string{
		lead,
		"シンプルながらもこだわりのディテールが光る一品で、様々なスタイリングに合わせやすく、長くご愛用いただけます。",
	}

	if product.Material != "" {
		paragraphs = append(paragraphs,
			fmt.Sprintf("素材には%sを使用し、快適な使い心地と美しい佇まいを両立しました。", product.Material))
	} else {
		paragraphs = append(paragraphs,
			"快適な着心地と美しいシルエットを両立し、日常のあらゆるシーンで活躍します。")
	}

	if n := len(product.Colors); n > 1 {
		paragraphs = append(paragraphs,
			fmt.Sprintf("カラーは全%d色展開。サイズも%sので、お好みに合わせてお選びいただけます。", n, sizeNote(len(product.Sizes))))
	} else {
		paragraphs = append(paragraphs,
			fmt.Sprintf("サイズは%sので、お好みに合わせてお選びいただけます。", sizeNote(len(product.Sizes))))
	}

	closing := "細部まで丁寧に仕上げられた品質の高さは、長期間の使用にも耐える耐久性を実現。\nお手入れも簡単で、いつでも清潔に保てます。"
	if product.HasDiscount() && product.DiscountRate() > 0 {
		closing = fmt.Sprintf("ただいま%d%%OFFの特別価格でご用意しています。\n%s", product.DiscountRate(), closing)
	}

	paragraphs = append(paragraphs, closing)

	return strings.Join(paragraphs, "\n\n")
}

func sizeNote(n int) string {
	if n > 1 {
		return fmt.Sprintf("%d種類ご用意しています", n)
	}

	return "豊富にご用意しています"
}
