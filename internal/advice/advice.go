// Package advice serves rule-based farming and husbandry guides.
package advice

import (
	"fmt"
	"strings"
)

type Advice struct {
	Title    string   `json:"title"`
	Advice   string   `json:"advice"`
	Tips     []string `json:"tips"`
	Warnings []string `json:"warnings"`
}

type entry struct {
	key    string
	advice Advice
}

// Tables are ordered: the first key that matches wins.
var cropTable = []entry{
	{"maïs", Advice{
		Title:  "Guide de culture du maïs",
		Advice: "Le maïs nécessite un sol riche en nutriments et une bonne irrigation. Plantez en saison des pluies pour un meilleur rendement.",
		Tips: []string{
			"Préparez le sol 2-3 semaines avant de planter",
			"Espacez les plants de 25-30cm",
			"Arrosez régulièrement, surtout pendant la floraison",
			"Appliquez un engrais NPK riche en azote",
			"Récoltez 3-4 mois après la plantation",
		},
		Warnings: []string{"Attention aux ravageurs: moucherons du maïs", "Assurez-vous d'une bonne drainage"},
	}},
	{"riz", Advice{
		Title:  "Guide de culture du riz",
		Advice: "Le riz a besoin d'une submersion régulière. Un pH du sol entre 6 et 7 est optimal.",
		Tips: []string{
			"Préparez les lits de semis longtemps à l'avance",
			"Maintenez 5-10cm d'eau sur le champ pendant la croissance",
			"Appliquez de l'engrais composé tous les 15 jours",
			"Luttez contre les mauvaises herbes régulièrement",
			"Récoltez quand 80-90% des grains sont matures",
		},
		Warnings: []string{"Prévenez la pourriture des tiges", "Contrôlez les criquets"},
	}},
	{"arachide", Advice{
		Title:  "Guide de culture de l'arachide",
		Advice: "L'arachide préfère un sol sableux. Elle a besoin de 120-150 jours pour arriver à maturité.",
		Tips: []string{
			"Semez après les premières pluies",
			"Espacez les plants de 15-20cm",
			"Le sol doit rester humide mais pas inondé",
			"Appliquez du calcium (chaux) pour éviter la carence",
			"Arrachez quand les feuilles commencent à jaunir",
		},
		Warnings: []string{"Attention à l'aflatoxine en stockage", "Prévenez le pourrissement des gousses"},
	}},
	{"millet", Advice{
		Title:  "Guide de culture du millet",
		Advice: "Le millet est très résistant à la sécheresse. C'est une culture idéale pour les régions arides.",
		Tips: []string{
			"Semez en début de saison des pluies",
			"Nécessite peu d'engrais",
			"Espacez les plants de 20-25cm",
			"Arrosez modérément",
			"Récoltez 60-90 jours après la plantation",
		},
		Warnings: []string{"Attention aux oiseaux pendant la maturation", "Traitez les pucerons si nécessaire"},
	}},
	{"tomate", Advice{
		Title:  "Guide de culture de la tomate",
		Advice: "La tomate a besoin de soleil et de beaucoup d'eau. Un sol riche en matière organique est important.",
		Tips: []string{
			"Plantez en début de saison chaude",
			"Tuteurez les plants pour éviter qu'ils ne se cassent",
			"Arrosez profondément 2-3 fois par semaine",
			"Appliquez un engrais riche en phosphore et potassium",
			"Récoltez 60-80 jours après la plantation",
		},
		Warnings: []string{"Attention au mildiou par temps humide", "Éliminez les feuilles malades"},
	}},
}

var livestockTable = []entry{
	{"cattle", Advice{
		Title:  "Guide d'élevage du bétail",
		Advice: "Le bétail a besoin d'un accès régulier à l'eau et à une alimentation équilibrée. La vaccination régulière est essentielle.",
		Tips: []string{
			"Fournissez de l'eau propre au moins 2 fois par jour",
			"Alimentez avec du foin de qualité ou des pâturages verts",
			"Vaccinez contre les maladies courantes (fièvre aphteuse, charbon)",
			"Effectuez un contrôle vétérinaire mensuel",
			"Maintenez une bonne hygiène des enclos",
		},
		Warnings: []string{"Attention à la fièvre aphteuse", "Prévenez les parasites externes"},
	}},
	{"goat", Advice{
		Title:  "Guide d'élevage des chèvres",
		Advice: "Les chèvres sont des animaux robustes mais ont besoin d'un abri adéquat et d'une alimentation diversifiée.",
		Tips: []string{
			"Fournissez un abri ventilé et sec",
			"Alimentez avec du foin, des grains et des pâturages",
			"Vaccinez contre la fièvre Q et autres maladies",
			"Trayez 2 fois par jour (femelles laitières)",
			"Examinez régulièrement les sabots et les cornes",
		},
		Warnings: []string{"Attention à la gale", "Prévenez les entérocolites"},
	}},
	{"sheep", Advice{
		Title:  "Guide d'élevage des moutons",
		Advice: "Les moutons ont besoin de pâturages de qualité et d'un abri protégé. La tonte doit être régulière.",
		Tips: []string{
			"Assurez une alimentation riche en fibres",
			"Tondez une fois par an, généralement au printemps",
			"Vaccinez contre les maladies communes",
			"Fournissez un accès à l'eau propre à volonté",
			"Contrôlez les parasites internes 2-3 fois par an",
		},
		Warnings: []string{"Attention à la gale sarcoptique", "Prévenez la pourriture des sabots"},
	}},
	{"poultry", Advice{
		Title:  "Guide d'élevage de la volaille",
		Advice: "La volaille a besoin de chaleur, d'eau et d'une alimentation équilibrée. L'hygiène est cruciale.",
		Tips: []string{
			"Maintenez la température à 35°C pour les poussins",
			"Fournissez une eau propre à volonté",
			"Alimentez avec un aliment équilibré (protéines 16-20%)",
			"Nettoyez le poulailler régulièrement",
			"Vaccinez contre Newcastle et les autres maladies",
		},
		Warnings: []string{"Attention aux maladies respiratoires", "Prévenez la coccidiose"},
	}},
	{"pig", Advice{
		Title:  "Guide d'élevage des porcs",
		Advice: "Les porcs ont besoin d'un bon abri, d'eau propre et d'une alimentation riche en protéines.",
		Tips: []string{
			"Construisez une porcherie bien ventilée",
			"Fournissez de l'eau fraîche constamment",
			"Alimentez avec des aliments riches en protéines et minéraux",
			"Vaccinez contre la peste porcine africaine",
			"Maintenez un bon système de drainage",
		},
		Warnings: []string{"Attention à la peste porcine africaine", "Prévenez les infections parasitaires"},
	}},
}

// lookup returns the first entry whose key contains the lowercased topic or is
// contained in it.
func lookup(table []entry, topic string) (Advice, bool) {
	q := strings.ToLower(strings.TrimSpace(topic))
	if q == "" {
		return Advice{}, false
	}
	for _, e := range table {
		if strings.Contains(q, e.key) || strings.Contains(e.key, q) {
			return clone(e.advice), true
		}
	}
	return Advice{}, false
}

func clone(a Advice) Advice {
	a.Tips = append([]string(nil), a.Tips...)
	a.Warnings = append([]string{}, a.Warnings...)
	return a
}

// Crop returns the growing guide for a crop, or generic guidance.
func Crop(topic string) Advice {
	if a, ok := lookup(cropTable, topic); ok {
		return a
	}
	return Advice{
		Title:  fmt.Sprintf("Conseils pour %s", topic),
		Advice: fmt.Sprintf("Nous n'avons pas de guide spécifique pour %s. Consultez un agent agricole local pour des conseils détaillés.", topic),
		Tips: []string{
			"Préparez bien votre sol avant la plantation",
			"Assurez-vous une irrigation régulière",
			"Utilisez un engrais adapté à votre sol",
			"Nettoyez régulièrement vos champs",
			"Consultez les données météorologiques locales",
		},
		Warnings: []string{},
	}
}

// Livestock returns the husbandry guide for an animal type, or generic guidance.
func Livestock(topic string) Advice {
	if a, ok := lookup(livestockTable, topic); ok {
		return a
	}
	return Advice{
		Title:  fmt.Sprintf("Conseils pour l'élevage de %s", topic),
		Advice: fmt.Sprintf("Nous n'avons pas de guide spécifique pour %s. Consultez un vétérinaire local pour des conseils détaillés.", topic),
		Tips: []string{
			"Fournissez un abri adéquat et propre",
			"Assurez un accès constant à l'eau propre",
			"Alimentez avec une nutrition équilibrée",
			"Vaccinez régulièrement",
			"Nettoyez et entretenez les enclos",
		},
		Warnings: []string{},
	}
}
