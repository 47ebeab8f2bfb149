package domain

var retailCatalog = []ToolSpec{
	{
		Name:        "search_products",
		Description: "Search for products by category or name",
		Parameters: map[string]ParamSpec{
			"category": {Type: "string", Description: "Product category to filter by", Required: optional()},
			"name":     {Type: "string", Description: "Product name to search for", Required: optional()},
		},
	},
	{
		Name:        "place_order",
		Description: "Place an order for products",
		Parameters: map[string]ParamSpec{
			"customer_id": {Type: "integer", Description: "ID of the customer placing the order"},
			"product_ids": {Type: "array", Description: "List of product IDs to order"},
			"quantities":  {Type: "array", Description: "List of quantities for each product"},
		},
	},
	{
		Name:        "return_item",
		Description: "Return an item from an order",
		Parameters: map[string]ParamSpec{
			"order_id": {Type: "integer", Description: "ID of the order containing the item"},
			"item_id":  {Type: "integer", Description: "ID of the specific item to return"},
			"reason":   {Type: "string", Description: "Reason for return"},
		},
	},
	{
		Name:        "check_inventory",
		Description: "Check inventory levels for a product",
		Parameters: map[string]ParamSpec{
			"product_id": {Type: "integer", Description: "ID of the product to check"},
		},
	},
	{
		Name:        "check_policy",
		Description: "Check store policies",
		Parameters: map[string]ParamSpec{
			"policy_type": {Type: "string", Description: "Type of policy to check ('return_window', 'warranty', 'loyalty_discount')"},
		},
	},
	respondToUserSpec,
}

// retailSchema bootstraps the retail world. Order 1 is seeded forty days in
// the past so the return-window rule has something to reject.
const retailSchema = `
CREATE TABLE customers (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    loyalty_points INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE products (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    category TEXT NOT NULL,
    price REAL NOT NULL,
    stock_quantity INTEGER NOT NULL
);

CREATE TABLE orders (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    customer_id INTEGER NOT NULL,
    order_date TEXT NOT NULL,
    total_amount REAL NOT NULL,
    status TEXT NOT NULL
);

CREATE TABLE order_items (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    order_id INTEGER NOT NULL,
    product_id INTEGER NOT NULL,
    quantity INTEGER NOT NULL,
    unit_price REAL NOT NULL
);

INSERT INTO customers (id, name, email, loyalty_points) VALUES
    (1, 'Dana Lee', 'dana@example.com', 150),
    (2, 'Evan Chen', 'evan@example.com', 40);

INSERT INTO products (id, name, category, price, stock_quantity) VALUES
    (201, 'Laptop Pro 15', 'Electronics', 999.99, 10),
    (202, 'Smartphone X', 'Electronics', 699.99, 5),
    (203, 'Wireless Headphones', 'Electronics', 199.99, 8),
    (204, 'Coffee Maker', 'Home', 89.99, 12);

INSERT INTO orders (id, customer_id, order_date, total_amount, status) VALUES
    (1, 1, date('now', '-40 day'), 999.99, 'completed');

INSERT INTO order_items (id, order_id, product_id, quantity, unit_price) VALUES
    (1, 1, 201, 1, 999.99);
`
