package sqlite

import "time"

type UserModel struct {
	ID          int64  `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Email       string `gorm:"uniqueIndex;not null"`
	Password    string `gorm:"not null"`
	AuthToken   string `gorm:"uniqueIndex;not null"`
	Age         int
	Gender      string
	Height      float64
	Weight      float64
	Activity    string
	DietMode    string
	BMI         float64 `gorm:"column:bmi"`
	BMICategory string  `gorm:"column:bmi_category"`
	BMR         float64 `gorm:"column:bmr"`
	DailyCal    float64
	CreatedAt   time.Time
}

func (UserModel) TableName() string { return "users" }

type FoodLogModel struct {
	ID        int64  `gorm:"primaryKey"`
	UserID    int64  `gorm:"not null;index"`
	LoggedOn  string `gorm:"not null"`
	FoodName  string `gorm:"not null"`
	Quantity  float64
	Calories  float64
	Protein   float64
	Carbs     float64
	Fat       float64
	Found     bool
	CreatedAt time.Time
}

func (FoodLogModel) TableName() string { return "food_log" }
