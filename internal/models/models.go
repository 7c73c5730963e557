package models

import "time"

// Ingredient is an optional add-on for a customizable product.
// ExtraCost is in cents.
type Ingredient struct {
	ID        int64  `db:"id" json:"id"`
	Name      string `db:"name" json:"nombre"`
	ExtraCost int64  `db:"extra_cost" json:"costo_extra"`
}

// Product is a base catalog item. BasePrice is in cents.
type Product struct {
	ID           int64        `db:"id" json:"id"`
	Name         string       `db:"name" json:"nombre"`
	Description  string       `db:"description" json:"descripcion"`
	BasePrice    int64        `db:"base_price" json:"precio_base"`
	ImageURL     string       `db:"image_url" json:"imagen,omitempty"`
	Customizable bool         `db:"customizable" json:"es_personalizable"`
	Ingredients  []Ingredient `db:"-" json:"ingredientes,omitempty"`
	CreatedAt    time.Time    `db:"created_at" json:"-"`
}

// Combo is a curated bundle of products sold at its own price.
type Combo struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"nombre"`
	Description  string    `db:"description" json:"descripcion"`
	Price        int64     `db:"price" json:"precio"`
	Customizable bool      `db:"customizable" json:"es_personalizable"`
	Products     []Product `db:"-" json:"productos,omitempty"`
}

// CustomCombo is a user-assembled bundle. TotalPrice is computed once at
// creation from the product base prices and never recomputed.
type CustomCombo struct {
	ID         int64              `db:"id" json:"id"`
	UserID     int64              `db:"user_id" json:"usuario"`
	Name       string             `db:"name" json:"nombre"`
	TotalPrice int64              `db:"total_price" json:"precio_total"`
	CreatedAt  time.Time          `db:"created_at" json:"creado_en"`
	Products   []CustomComboEntry `db:"-" json:"productos,omitempty"`
}

// CustomComboEntry holds one product line of a custom combo.
type CustomComboEntry struct {
	ProductID int64 `db:"product_id" json:"producto"`
	Quantity  int   `db:"quantity" json:"cantidad"`
}

// Cart is the single mutable scratch area a user fills before checkout.
type Cart struct {
	ID        int64      `db:"id" json:"id"`
	UserID    int64      `db:"user_id" json:"usuario"`
	CreatedAt time.Time  `db:"created_at" json:"creado"`
	Items     []CartItem `db:"-" json:"items"`
	Total     int64      `db:"-" json:"total_carrito"`
}

// CartItem is one line in a cart. Exactly one of ProductID/ComboID is set.
// LinePrice = (base price + selected ingredient extras) * quantity, fixed at
// add time; later catalog price changes do not touch it.
type CartItem struct {
	ID          int64        `db:"id" json:"id"`
	CartID      int64        `db:"cart_id" json:"-"`
	ProductID   *int64       `db:"product_id" json:"producto,omitempty"`
	ComboID     *int64       `db:"combo_id" json:"combo,omitempty"`
	Quantity    int          `db:"quantity" json:"cantidad"`
	LinePrice   int64        `db:"line_price" json:"precio_total"`
	Ingredients []Ingredient `db:"-" json:"ingredientes,omitempty"`
}

// OrderState is a named lifecycle label. Descriptions are unique and
// resolved by exact match, never by substring.
type OrderState struct {
	ID          int64  `db:"id" json:"id"`
	Description string `db:"description" json:"descripcion"`
}

// Well-known state descriptions, lazily created on first use.
const (
	StateSent   = "Enviado"
	StateUnread = "No Leído"
	StateRead   = "Leído"
	StateInfo   = "Información"
	// StateNone labels the histogram bucket for orders without a state.
	StateNone = "Sin estado"
)

// Order is the immutable record of a placed cart. Total and items are
// snapshotted at placement and never change afterwards; only the state
// label may be moved by staff.
type Order struct {
	ID             int64       `db:"id" json:"id"`
	UserID         int64       `db:"user_id" json:"usuario"`
	StateID        *int64      `db:"state_id" json:"estado,omitempty"`
	StateDesc      string      `db:"state_desc" json:"estado_descripcion,omitempty"`
	Total          int64       `db:"total" json:"total"`
	Address        string      `db:"address" json:"direccion"`
	Phone          string      `db:"phone" json:"telefono_contacto"`
	PaymentMethod  string      `db:"payment_method" json:"metodo_pago"`
	IdempotencyKey string      `db:"idempotency_key" json:"-"`
	CreatedAt      time.Time   `db:"created_at" json:"creado"`
	Items          []OrderItem `db:"-" json:"items"`
}

// OrderItem is a frozen line of an order. UnitPrice is copied from the cart
// item at placement time, insulated from later catalog changes.
type OrderItem struct {
	ID        int64  `db:"id" json:"id"`
	OrderID   int64  `db:"order_id" json:"-"`
	ProductID *int64 `db:"product_id" json:"producto,omitempty"`
	ComboID   *int64 `db:"combo_id" json:"combo,omitempty"`
	Quantity  int    `db:"quantity" json:"cantidad"`
	UnitPrice int64  `db:"unit_price" json:"precio_unitario"`
}

// Notification is a message in a user's inbox. Only its state label ever
// changes after creation.
type Notification struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"usuario"`
	Message   string    `db:"message" json:"mensaje"`
	StateID   *int64    `db:"state_id" json:"estado,omitempty"`
	StateDesc string    `db:"state_desc" json:"estado_descripcion,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"creado"`
}

// Review is a product rating. Rating is an integer in [1,5]. A user may
// review the same product more than once.
type Review struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"usuario"`
	UserEmail   string    `db:"user_email" json:"usuario_email,omitempty"`
	ProductID   int64     `db:"product_id" json:"producto"`
	ProductName string    `db:"product_name" json:"producto_nombre,omitempty"`
	Text        string    `db:"text" json:"texto"`
	Rating      int       `db:"rating" json:"calificacion"`
	CreatedAt   time.Time `db:"created_at" json:"creado"`
}

// User is an account. Deactivated accounts keep their rows (IsActive=false)
// and cannot authenticate until reactivated by staff.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	PhoneNumber  string    `db:"phone_number" json:"phone_number,omitempty"`
	Points       int       `db:"points" json:"points"`
	IsStaff      bool      `db:"is_staff" json:"is_staff"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	DateJoined   time.Time `db:"date_joined" json:"date_joined"`
}

// OrderStats aggregates a user's own orders.
type OrderStats struct {
	TotalOrders   int            `json:"total_pedidos"`
	TotalSpent    int64          `json:"total_gastado"`
	AveragePerOrd float64        `json:"promedio_por_pedido"`
	ByState       map[string]int `json:"pedidos_por_estado"`
}

// ReviewStats aggregates reviews for one product. Distribution always has
// the five buckets 1..5, zero-filled.
type ReviewStats struct {
	ProductID    int64       `json:"producto_id"`
	ProductName  string      `json:"producto_nombre"`
	TotalReviews int         `json:"total_reviews"`
	Average      float64     `json:"promedio_calificacion"`
	Distribution map[int]int `json:"distribucion_calificaciones"`
}

// UserStats summarizes one account's activity.
type UserStats struct {
	Username     string    `json:"usuario"`
	Email        string    `json:"email"`
	Points       int       `json:"puntos"`
	DateJoined   time.Time `json:"fecha_registro"`
	TotalOrders  int       `json:"total_pedidos"`
	TotalReviews int       `json:"total_reviews"`
	Active       bool      `json:"cuenta_activa"`
}
