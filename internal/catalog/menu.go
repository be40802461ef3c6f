// Package catalog holds the static restaurant menu served to the
// storefront webapp. Categories: promociones, pizzas, bebidas,
// postres, adicionales.
package catalog

type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Emoji       string  `json:"emoji"`
	Image       string  `json:"image,omitempty"`
}

var products = map[string][]Product{
	"promociones": {
		{
			ID:          "promo-1",
			Name:        "Combo Pizza + Coca-Cola",
			Description: "Pizza mediana de tu elección + Coca-Cola 500ml. ¡Perfecto para una comida rápida!",
			Price:       76.00,
			Emoji:       "🔥",
		},
		{
			ID:          "promo-2",
			Name:        "Promo Familiar (2 Pizzas + 2 Bebidas)",
			Description: "2 Pizzas grandes + 2 Bebidas de 500ml. Ideal para compartir en familia.",
			Price:       124.00,
			Emoji:       "👨‍👩‍👧‍👦",
		},
		{
			ID:          "promo-3",
			Name:        "Almuerzo Express (Pizza Personal + Bebida)",
			Description: "Pizza personal + Bebida. Rápido y delicioso para tu almuerzo.",
			Price:       59.00,
			Emoji:       "⏱️",
		},
	},
	"pizzas": {
		{
			ID:          "pizza-1",
			Name:        "Pizza Pepperoni",
			Description: "Clásica pizza con abundante pepperoni y queso mozzarella.",
			Price:       69.00,
			Emoji:       "🍕",
		},
		{
			ID:          "pizza-2",
			Name:        "Pizza Hawaiana",
			Description: "Jamón, piña y queso mozzarella sobre salsa de tomate.",
			Price:       72.00,
			Emoji:       "🍍",
		},
		{
			ID:          "pizza-3",
			Name:        "Pizza Cuatro Quesos",
			Description: "Mozzarella, gorgonzola, parmesano y provolone.",
			Price:       85.00,
			Emoji:       "🧀",
		},
		{
			ID:          "pizza-4",
			Name:        "Pizza Vegetariana",
			Description: "Pimientos, champiñones, cebolla, aceitunas y tomate fresco.",
			Price:       67.00,
			Emoji:       "🥦",
		},
	},
	"bebidas": {
		{
			ID:          "bebida-1",
			Name:        "Coca-Cola 500ml",
			Description: "Bebida gaseosa bien fría.",
			Price:       10.00,
			Emoji:       "🥤",
		},
		{
			ID:          "bebida-2",
			Name:        "Jugo de Maracuyá 500ml",
			Description: "Jugo natural de maracuyá.",
			Price:       14.00,
			Emoji:       "🧃",
		},
	},
	"postres": {
		{
			ID:          "postre-1",
			Name:        "Tiramisú",
			Description: "Postre italiano clásico con café y mascarpone.",
			Price:       28.00,
			Emoji:       "🍰",
		},
		{
			ID:          "postre-2",
			Name:        "Brownie con Helado",
			Description: "Brownie tibio de chocolate con bola de helado de vainilla.",
			Price:       25.00,
			Emoji:       "🍫",
		},
	},
	"adicionales": {
		{
			ID:          "adicional-1",
			Name:        "Porción de Pan de Ajo",
			Description: "6 unidades de pan de ajo con queso.",
			Price:       18.00,
			Emoji:       "🥖",
		},
		{
			ID:          "adicional-2",
			Name:        "Salsa BBQ Extra",
			Description: "Porción adicional de salsa barbacoa.",
			Price:       5.00,
			Emoji:       "🥫",
		},
	},
}

// Products returns the full menu keyed by category.
func Products() map[string][]Product {
	return products
}
