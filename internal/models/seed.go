package models

import (
	"context"

	"github.com/shanture-next/internal/logger"

	"gorm.io/gorm"
)

// SampleProduct 示例商品
type SampleProduct struct {
	Name        string
	Description string
	Price       float64
	Image       string
	Category    string
	Stock       int
}

// SampleProducts 默认商品目录
var SampleProducts = []SampleProduct{
	{Name: "Wireless Bluetooth Headphones", Description: "High-quality wireless headphones with noise cancellation and long battery life.", Price: 79.99, Image: "https://images.unsplash.com/photo-1580894894513-ec91a06a1e84", Category: "wearables", Stock: 25},
	{Name: "Smartphone 5G", Description: "Latest smartphone with 5G support, 128GB storage, and AMOLED display.", Price: 699.0, Image: "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9", Category: "electronics", Stock: 15},
	{Name: "Gaming Laptop", Description: "Powerful gaming laptop with Intel i7, RTX 3060, and 16GB RAM.", Price: 1299.5, Image: "https://images.unsplash.com/photo-1517336714731-489689fd1ca8", Category: "electronics", Stock: 8},
	{Name: "Digital Camera", Description: "Compact digital camera with 24MP lens and 4K video recording.", Price: 499.99, Image: "https://images.unsplash.com/photo-1519183071298-a2962be96c85", Category: "electronics", Stock: 12},
	{Name: "Smart Watch", Description: "Feature-packed smartwatch with heart rate monitor and GPS.", Price: 199.99, Image: "https://images.unsplash.com/photo-1519400191622-4c1dcd5d3e4d", Category: "wearables", Stock: 30},
	{Name: "Wireless Mouse", Description: "Ergonomic wireless mouse with long battery life and fast response.", Price: 25.5, Image: "https://images.unsplash.com/photo-1587825140708-dfaf72ae4b04", Category: "electronics", Stock: 50},
	{Name: "Mechanical Keyboard", Description: "RGB backlit mechanical keyboard with blue switches.", Price: 89.99, Image: "https://images.unsplash.com/photo-1517336714731-489689fd1ca8", Category: "electronics", Stock: 20},
	{Name: "4K LED TV", Description: "55-inch Ultra HD 4K LED Smart TV with HDR support.", Price: 899.0, Image: "https://images.unsplash.com/photo-1587825140708-dfaf72ae4b04", Category: "electronics", Stock: 10},
	{Name: "Portable Speaker", Description: "Waterproof Bluetooth speaker with 12 hours of playtime.", Price: 59.99, Image: "https://images.unsplash.com/photo-1507874457470-272b3c8d8ee2", Category: "electronics", Stock: 40},
	{Name: "Tablet", Description: "10.5-inch tablet with stylus support and 64GB storage.", Price: 349.99, Image: "https://images.unsplash.com/photo-1580894732444-8a71d79e9f73", Category: "electronics", Stock: 18},
	{Name: "DSLR Camera Lens", Description: "50mm f/1.8 lens for DSLR cameras, perfect for portraits.", Price: 129.99, Image: "https://images.unsplash.com/photo-1519183071298-a2962be96c85", Category: "electronics", Stock: 22},
	{Name: "Smart Home Hub", Description: "Voice-controlled smart home hub compatible with Alexa and Google Assistant.", Price: 149.0, Image: "https://images.unsplash.com/photo-1603791452906-bc1e3a8b1d57", Category: "appliances", Stock: 14},
	{Name: "Fitness Tracker", Description: "Lightweight fitness tracker with heart rate monitor and sleep tracking.", Price: 79.0, Image: "https://images.unsplash.com/photo-1519400191622-4c1dcd5d3e4d", Category: "wearables", Stock: 35},
	{Name: "Drone with Camera", Description: "Quadcopter drone with 1080p HD camera and GPS.", Price: 599.0, Image: "https://images.unsplash.com/photo-1508612761958-e931d843bdd0", Category: "electronics", Stock: 6},
	{Name: "VR Headset", Description: "Immersive VR headset with motion tracking and 3D audio.", Price: 399.99, Image: "https://images.unsplash.com/photo-1623039405147-98a32956543a", Category: "wearables", Stock: 9},
	{Name: "Coffee Maker", Description: "Automatic coffee maker with programmable timer and grinder.", Price: 129.5, Image: "https://images.unsplash.com/photo-1509042239860-f550ce710b93", Category: "appliances", Stock: 28},
	{Name: "Microwave Oven", Description: "1000W microwave oven with grill and convection modes.", Price: 229.0, Image: "https://images.unsplash.com/photo-1586201375761-83865001e17d", Category: "appliances", Stock: 11},
	{Name: "Air Conditioner", Description: "1.5-ton split AC with inverter technology and fast cooling.", Price: 699.0, Image: "https://images.unsplash.com/photo-1598300057685-3c5bb7e7608f", Category: "appliances", Stock: 7},
	{Name: "Refrigerator", Description: "Double-door refrigerator with 300L capacity and frost-free cooling.", Price: 599.0, Image: "https://images.unsplash.com/photo-1606813902781-8b8f4b6f2f0a", Category: "appliances", Stock: 13},
	{Name: "Washing Machine", Description: "Front-load washing machine with 7kg capacity and eco wash feature.", Price: 499.0, Image: "https://images.unsplash.com/photo-1621891337386-3d6b7a3e02aa", Category: "appliances", Stock: 10},
}

// SeedProducts 商品表为空时写入示例商品，返回写入数量
func SeedProducts(ctx context.Context, db *gorm.DB) (int, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&Product{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		logger.Debugw("seed_products_skipped", "existing", count)
		return 0, nil
	}

	products := make([]Product, 0, len(SampleProducts))
	for _, sample := range SampleProducts {
		products = append(products, Product{
			Name:        sample.Name,
			Description: sample.Description,
			Price:       NewMoneyFromFloat(sample.Price),
			Image:       sample.Image,
			Category:    sample.Category,
			Stock:       sample.Stock,
		})
	}
	if err := db.WithContext(ctx).Create(&products).Error; err != nil {
		return 0, err
	}
	logger.Infow("seed_products_created", "count", len(products))
	return len(products), nil
}
