package entity

// MaxCategoryID bounds move_category_id; the catalog holds exactly three categories.
const MaxCategoryID int64 = 3

// MaxAddressLength matches the address column width, in characters.
const MaxAddressLength = 200

type Reservation struct {
	ID             int64  `db:"id"`
	UserID         int64  `db:"user_id"`
	MoveCategoryID int64  `db:"move_category_id"`
	Address        string `db:"address"`
	MobileNumber   string `db:"mobile_number"`
}

// View is a move reservation with its category label.
type View struct {
	ID           int64  `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	MoveCategory string `db:"move_category" json:"move_category"`
	Address      string `db:"address" json:"address"`
	PhoneNumber  string `db:"phone_number" json:"phone_number"`
}
