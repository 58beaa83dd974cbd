package database

// Default data owned by the system user.

var defaultCategories = []string{
	"Breakfast", "Lunch", "Dinner", "Dessert", "Appetizer", "Main Course",
	"Side Dish", "Snack", "Italian", "Mexican", "Asian", "Vegetarian",
	"Vegan", "Quick & Easy", "Seafood", "Baking", "Comfort Food", "Soups",
	"Salads", "Smoothies", "Grilling", "Mediterranean",
}

type seedIngredient struct {
	Name         string
	QuantityUnit string
}

type seedRecipe struct {
	Title        string
	Description  string
	Instructions string
	PrepTime     string
	CookTime     string
	Ingredients  []seedIngredient
	Categories   []string
}

var defaultRecipes = []seedRecipe{
	{
		Title:        "Classic Spaghetti Bolognese",
		Description:  "A rich and hearty Italian meat sauce served with spaghetti.",
		Instructions: "1. Brown ground meat. 2. Add onions, carrots, celery and cook. 3. Stir in crushed tomatoes, herbs, and simmer for at least 1 hour. 4. Serve over cooked spaghetti with parmesan.",
		PrepTime:     "20 mins",
		CookTime:     "1 hour 30 mins",
		Ingredients: []seedIngredient{
			{"Ground Beef", "500g"},
			{"Crushed Tomatoes", "800g can"},
			{"Onion", "1 large, chopped"},
			{"Garlic", "3 cloves, minced"},
			{"Carrot", "1, diced"},
			{"Celery Stalk", "1, diced"},
			{"Beef Broth", "250ml"},
			{"Red Wine", "125ml (optional)"},
			{"Spaghetti", "400g"},
			{"Parmesan Cheese", "for serving"},
		},
		Categories: []string{"Main Course", "Italian", "Dinner"},
	},
	{
		Title:        "Simple Scrambled Eggs",
		Description:  "Fluffy scrambled eggs perfect for breakfast.",
		Instructions: "1. Whisk eggs with a splash of milk/cream, salt, and pepper. 2. Melt butter in a non-stick pan over medium-low heat. 3. Pour in egg mixture. 4. Gently push cooked egg from edges to center until mostly set but still moist. 5. Serve immediately.",
		PrepTime:     "2 mins",
		CookTime:     "5 mins",
		Ingredients: []seedIngredient{
			{"Eggs", "3 large"},
			{"Milk or Cream", "1 tbsp"},
			{"Butter", "1 tsp"},
			{"Salt", "to taste"},
			{"Black Pepper", "to taste"},
		},
		Categories: []string{"Breakfast", "Quick & Easy"},
	},
	{
		Title:        "Classic Guacamole",
		Description:  "A fresh and simple dip with ripe avocados, lime, and cilantro.",
		Instructions: "1. Mash avocados in a bowl. 2. Mix in diced onion, chopped cilantro, minced jalapeño, and salt. 3. Squeeze fresh lime juice over the mixture and stir to combine. 4. Serve immediately with tortilla chips.",
		PrepTime:     "10 mins",
		CookTime:     "",
		Ingredients: []seedIngredient{
			{"Avocados", "3 ripe"},
			{"Red Onion", "1/4 cup, diced"},
			{"Cilantro", "1/4 cup, chopped"},
			{"Jalapeño", "1, finely minced (optional)"},
			{"Lime", "1, juiced"},
			{"Salt", "1/2 tsp"},
		},
		Categories: []string{"Appetizer", "Snack", "Mexican", "Quick & Easy"},
	},
	{
		Title:        "Lemon Herb Roast Chicken",
		Description:  "Juicy, tender roasted chicken with bright lemon and savory herbs.",
		Instructions: "1. Pat chicken dry and season generously with salt and pepper. 2. Stuff the cavity with a cut lemon, garlic, and fresh herbs like rosemary and thyme. 3. Rub with olive oil and place in a roasting pan. 4. Roast at 400°F (200°C) for 1 hour 20 minutes, or until the internal temperature reaches 165°F (74°C).",
		PrepTime:     "15 mins",
		CookTime:     "1 hr 20 mins",
		Ingredients: []seedIngredient{
			{"Whole Chicken", "1 (about 1.5kg)"},
			{"Lemon", "1, halved"},
			{"Garlic", "6 cloves"},
			{"Fresh Rosemary", "2 sprigs"},
			{"Fresh Thyme", "2 sprigs"},
			{"Olive Oil", "2 tbsp"},
			{"Salt and Pepper", "to taste"},
		},
		Categories: []string{"Main Course", "Dinner", "Comfort Food"},
	},
	{
		Title:        "Quick Vegetable Stir-Fry",
		Description:  "A healthy and customizable stir-fry packed with fresh vegetables.",
		Instructions: "1. Prepare sauce by whisking soy sauce, ginger, and garlic. 2. Heat oil in a wok or large pan. 3. Add hard vegetables like broccoli and carrots first and stir-fry for 3-4 minutes. 4. Add softer vegetables like bell peppers and snap peas and cook until tender-crisp. 5. Pour sauce over vegetables and toss to coat. Serve immediately, optionally over rice.",
		PrepTime:     "15 mins",
		CookTime:     "10 mins",
		Ingredients: []seedIngredient{
			{"Broccoli Florets", "2 cups"},
			{"Carrots", "1 cup, sliced"},
			{"Bell Pepper", "1, sliced"},
			{"Snap Peas", "1 cup"},
			{"Soy Sauce", "1/4 cup"},
			{"Ginger", "1 tsp, grated"},
			{"Garlic", "2 cloves, minced"},
		},
		Categories: []string{"Side Dish", "Asian", "Vegetarian", "Vegan", "Quick & Easy"},
	},
	{
		Title:        "Simple Pesto Pasta",
		Description:  "A fresh and delicious pasta dish made with basil pesto.",
		Instructions: "1. Cook pasta according to package directions. 2. While pasta is cooking, toast pine nuts in a dry pan. 3. In a food processor, combine basil, toasted pine nuts, garlic, parmesan, and olive oil. Blend until a smooth paste forms. 4. Drain pasta, reserving a little pasta water. 5. Toss pasta with pesto, adding a little pasta water to reach desired consistency. Serve with extra parmesan.",
		PrepTime:     "10 mins",
		CookTime:     "15 mins",
		Ingredients: []seedIngredient{
			{"Pasta (e.g., Fusilli or Penne)", "400g"},
			{"Fresh Basil", "2 cups, packed"},
			{"Pine Nuts", "1/2 cup"},
			{"Garlic", "2 cloves"},
			{"Parmesan Cheese", "1/2 cup, grated"},
			{"Extra Virgin Olive Oil", "1/2 cup"},
		},
		Categories: []string{"Main Course", "Italian", "Vegetarian", "Quick & Easy"},
	},
	{
		Title:        "Homemade Pepperoni Pizza",
		Description:  "Classic pepperoni pizza made at home with a crispy crust.",
		Instructions: "1. Preheat oven to 475°F (245°C) with a pizza stone or baking sheet inside. 2. Roll out dough and place on parchment paper. 3. Spread pizza sauce evenly, leaving a 1-inch border. 4. Top with mozzarella and pepperoni slices. 5. Bake for 10-15 minutes, or until the crust is golden brown and cheese is bubbly.",
		PrepTime:     "20 mins",
		CookTime:     "15 mins",
		Ingredients: []seedIngredient{
			{"Pizza Dough", "1 ball"},
			{"Pizza Sauce", "1/2 cup"},
			{"Mozzarella Cheese", "1.5 cups, shredded"},
			{"Pepperoni Slices", "1/2 cup"},
		},
		Categories: []string{"Main Course", "Italian", "Dinner", "Comfort Food"},
	},
	{
		Title:        "Easy Chicken Fajitas",
		Description:  "Sizzling chicken and bell peppers served with warm tortillas.",
		Instructions: "1. Slice chicken breast and bell peppers. 2. In a bowl, toss chicken and peppers with olive oil and fajita seasoning. 3. Heat a large skillet over medium-high heat and cook the mixture, stirring often, until chicken is cooked through and vegetables are tender-crisp. 4. Serve immediately with warm tortillas and your favorite toppings like sour cream and salsa.",
		PrepTime:     "15 mins",
		CookTime:     "20 mins",
		Ingredients: []seedIngredient{
			{"Chicken Breast", "2, sliced"},
			{"Bell Peppers", "2, sliced"},
			{"Onion", "1, sliced"},
			{"Fajita Seasoning", "2 tbsp"},
			{"Olive Oil", "1 tbsp"},
			{"Tortillas", "8 large"},
		},
		Categories: []string{"Main Course", "Mexican", "Dinner"},
	},
	{
		Title:        "Classic Chocolate Chip Cookies",
		Description:  "Soft and chewy cookies with gooey chocolate chips.",
		Instructions: "1. Cream butter and sugars. 2. Beat in eggs and vanilla. 3. In a separate bowl, whisk flour, baking soda, and salt. 4. Gradually add dry ingredients to wet ingredients. 5. Fold in chocolate chips. 6. Drop spoonfuls onto a baking sheet and bake at 375°F (190°C) for 10-12 minutes.",
		PrepTime:     "15 mins",
		CookTime:     "12 mins",
		Ingredients: []seedIngredient{
			{"Butter", "1/2 cup, softened"},
			{"Brown Sugar", "1/2 cup"},
			{"White Sugar", "1/4 cup"},
			{"Egg", "1 large"},
			{"Vanilla Extract", "1 tsp"},
			{"All-purpose Flour", "1.5 cups"},
			{"Baking Soda", "1/2 tsp"},
			{"Salt", "1/4 tsp"},
			{"Chocolate Chips", "1 cup"},
		},
		Categories: []string{"Dessert", "Baking", "Comfort Food"},
	},
	{
		Title:        "Creamy Mac and Cheese",
		Description:  "The ultimate comfort food with a rich, cheesy sauce.",
		Instructions: "1. Cook pasta according to package directions. 2. In a saucepan, melt butter. Whisk in flour to create a roux. 3. Gradually whisk in milk until smooth. Cook over medium heat until thickened. 4. Reduce heat to low and stir in shredded cheeses until melted and smooth. 5. Season with salt, pepper, and a pinch of nutmeg. 6. Stir in cooked pasta and serve immediately.",
		PrepTime:     "10 mins",
		CookTime:     "20 mins",
		Ingredients: []seedIngredient{
			{"Elbow Macaroni", "1 box (450g)"},
			{"Butter", "1/4 cup"},
			{"All-purpose Flour", "1/4 cup"},
			{"Milk", "3 cups"},
			{"Cheddar Cheese", "2 cups, shredded"},
			{"Gruyère Cheese", "1 cup, shredded (optional)"},
			{"Salt and Pepper", "to taste"},
		},
		Categories: []string{"Main Course", "Side Dish", "Comfort Food", "Vegetarian"},
	},
}
