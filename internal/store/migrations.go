package store

// All prices are stored in cents. carts.user_id carries a unique constraint
// so concurrent get-or-create calls cannot produce two live carts.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username VARCHAR(150) NOT NULL,
		email VARCHAR(254) NOT NULL UNIQUE,
		password_hash VARCHAR(128) NOT NULL,
		first_name VARCHAR(150) NOT NULL DEFAULT '',
		last_name VARCHAR(150) NOT NULL DEFAULT '',
		phone_number VARCHAR(15) NOT NULL DEFAULT '',
		points INT NOT NULL DEFAULT 0,
		is_staff BOOLEAN NOT NULL DEFAULT FALSE,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		date_joined TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,

	`CREATE TABLE IF NOT EXISTS ingredients (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		extra_cost BIGINT NOT NULL DEFAULT 0 CHECK (extra_cost >= 0)
	);`,

	`CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(200) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		base_price BIGINT NOT NULL CHECK (base_price >= 0),
		image_url TEXT NOT NULL DEFAULT '',
		customizable BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,

	`CREATE TABLE IF NOT EXISTS product_ingredients (
		product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		ingredient_id BIGINT NOT NULL REFERENCES ingredients(id) ON DELETE CASCADE,
		PRIMARY KEY (product_id, ingredient_id)
	);`,

	`CREATE TABLE IF NOT EXISTS combos (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(200) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price BIGINT NOT NULL CHECK (price >= 0),
		customizable BOOLEAN NOT NULL DEFAULT FALSE
	);`,

	`CREATE TABLE IF NOT EXISTS combo_products (
		combo_id BIGINT NOT NULL REFERENCES combos(id) ON DELETE CASCADE,
		product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		PRIMARY KEY (combo_id, product_id)
	);`,

	`CREATE TABLE IF NOT EXISTS custom_combos (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name VARCHAR(200) NOT NULL,
		total_price BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,

	`CREATE TABLE IF NOT EXISTS custom_combo_products (
		custom_combo_id BIGINT NOT NULL REFERENCES custom_combos(id) ON DELETE CASCADE,
		product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		quantity INT NOT NULL DEFAULT 1 CHECK (quantity >= 1),
		PRIMARY KEY (custom_combo_id, product_id)
	);`,

	`CREATE TABLE IF NOT EXISTS carts (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,

	`CREATE TABLE IF NOT EXISTS cart_items (
		id BIGSERIAL PRIMARY KEY,
		cart_id BIGINT NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
		product_id BIGINT REFERENCES products(id) ON DELETE CASCADE,
		combo_id BIGINT REFERENCES combos(id) ON DELETE CASCADE,
		quantity INT NOT NULL DEFAULT 1 CHECK (quantity >= 1),
		line_price BIGINT NOT NULL DEFAULT 0,
		CHECK (num_nonnulls(product_id, combo_id) = 1)
	);`,

	`CREATE TABLE IF NOT EXISTS cart_item_ingredients (
		cart_item_id BIGINT NOT NULL REFERENCES cart_items(id) ON DELETE CASCADE,
		ingredient_id BIGINT NOT NULL REFERENCES ingredients(id) ON DELETE CASCADE,
		PRIMARY KEY (cart_item_id, ingredient_id)
	);`,

	`CREATE TABLE IF NOT EXISTS order_states (
		id BIGSERIAL PRIMARY KEY,
		description VARCHAR(100) NOT NULL UNIQUE
	);`,

	`CREATE TABLE IF NOT EXISTS orders (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		state_id BIGINT REFERENCES order_states(id),
		total BIGINT NOT NULL,
		address VARCHAR(400) NOT NULL,
		phone VARCHAR(30) NOT NULL,
		payment_method VARCHAR(50) NOT NULL DEFAULT 'SIMULADO',
		idempotency_key VARCHAR(64),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (user_id, idempotency_key)
	);`,

	`CREATE TABLE IF NOT EXISTS order_items (
		id BIGSERIAL PRIMARY KEY,
		order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		product_id BIGINT REFERENCES products(id),
		combo_id BIGINT REFERENCES combos(id),
		quantity INT NOT NULL CHECK (quantity >= 1),
		unit_price BIGINT NOT NULL
	);`,

	`CREATE TABLE IF NOT EXISTS notifications (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		message VARCHAR(500) NOT NULL,
		state_id BIGINT REFERENCES order_states(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,

	`CREATE TABLE IF NOT EXISTS reviews (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		text TEXT NOT NULL DEFAULT '',
		rating INT NOT NULL CHECK (rating BETWEEN 1 AND 5),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,

	`CREATE INDEX IF NOT EXISTS idx_orders_user_created ON orders(user_id, created_at DESC);`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_user_created ON notifications(user_id, created_at DESC);`,
	`CREATE INDEX IF NOT EXISTS idx_reviews_product ON reviews(product_id);`,
}
