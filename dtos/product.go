package dtos

// ProductCreate is the request body for creating a product.
type ProductCreate struct {
	Code        string  `json:"codigo" binding:"required,max=50"`
	Name        string  `json:"nombre" binding:"required,max=200"`
	Description string  `json:"descripcion"`
	Quantity    int     `json:"cantidad" binding:"min=0"`
	Price       float64 `json:"precio" binding:"required,gt=0"`
	Category    string  `json:"categoria" binding:"max=100"`
}

// ProductUpdate is the request body for updating a product. Every field is
// optional; absent fields are left unchanged.
type ProductUpdate struct {
	Code        *string  `json:"codigo" binding:"omitempty,min=1,max=50"`
	Name        *string  `json:"nombre" binding:"omitempty,min=1,max=200"`
	Description *string  `json:"descripcion"`
	Quantity    *int     `json:"cantidad" binding:"omitempty,min=0"`
	Price       *float64 `json:"precio" binding:"omitempty,gt=0"`
	Category    *string  `json:"categoria" binding:"omitempty,max=100"`
}
