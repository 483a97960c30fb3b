package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Failed to ping DB: %v", err)
	}

	seedUsers(ctx, pool)
	seedProducts(ctx, pool)
	seedFaqs(ctx, pool)
	seedArticles(ctx, pool)

	log.Println("Seeding completed successfully!")
}

func seedUsers(ctx context.Context, pool *pgxpool.Pool) {
	users := []struct {
		Name  string
		Email string
		Role  string
	}{
		{"Admin", "admin@storefront.my", "admin"},
		{"Aisyah Rahman", "aisyah@example.com", "customer"},
		{"Farid Kamil", "farid@example.com", "customer"},
		{"Mei Ling Tan", "meiling@example.com", "customer"},
		{"Arun Kumar", "arun@example.com", "customer"},
		{"Nurul Huda", "nurul@example.com", "customer"},
		{"Wei Jie Lim", "weijie@example.com", "customer"},
		{"Siti Zainab", "siti@example.com", "customer"},
	}

	hash, err := argon2id.CreateHash("password123", argon2id.DefaultParams)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	fmt.Println("Seeding Users...")
	for _, u := range users {
		_, err := pool.Exec(ctx, `
			INSERT INTO users (name, email, password_hash, roles)
			VALUES ($1, $2, $3, ARRAY[$4])
			ON CONFLICT (email) DO NOTHING
		`, u.Name, u.Email, hash, u.Role)
		if err != nil {
			log.Printf("Failed to seed user %s: %v", u.Email, err)
		}
	}
}

func seedProducts(ctx context.Context, pool *pgxpool.Pool) {
	type product struct {
		Title        string
		Slug         string
		RegularPrice int64 // sen
		MemberPrice  int64
		Promotional  bool
		PromoPrice   int64
		IsQualifying bool
		Stock        int32
	}
	products := []product{
		{"Beg Galas Harian", "beg-galas-harian", 12900, 10900, false, 0, true, 120},
		{"Botol Air Keluli 750ml", "botol-air-keluli-750ml", 5900, 4900, false, 0, true, 300},
		{"Kemeja Batik Lelaki", "kemeja-batik-lelaki", 15900, 13900, false, 0, true, 80},
		{"Tudung Bawal Premium", "tudung-bawal-premium", 4500, 3900, false, 0, true, 250},
		{"Set Pinggan Mangkuk 16 Pcs", "set-pinggan-mangkuk-16", 18900, 16900, false, 0, true, 45},
		{"Kipas Meja USB", "kipas-meja-usb", 3900, 3500, true, 2900, true, 500},
		{"Serbuk Kopi Tenom 500g", "serbuk-kopi-tenom-500g", 2800, 2500, false, 0, true, 600},
		{"Tikar Yoga Anti-Slip", "tikar-yoga-anti-slip", 8900, 7500, true, 6900, true, 150},
		{"Kad Hadiah Digital RM50", "kad-hadiah-digital-rm50", 5000, 5000, false, 0, false, 9999},
		{"Baucar Penghantaran Percuma", "baucar-penghantaran-percuma", 1000, 1000, false, 0, false, 9999},
	}

	fmt.Println("Seeding Products...")
	for _, p := range products {
		var promoPrice, promoStart, promoEnd any
		if p.Promotional {
			promoPrice = p.PromoPrice
			promoStart = time.Now().Add(-24 * time.Hour)
			promoEnd = time.Now().Add(30 * 24 * time.Hour)
		}
		_, err := pool.Exec(ctx, `
			INSERT INTO products (
				title, slug, regular_price, member_price,
				is_promotional, promotional_price, promotion_start, promotion_end,
				is_qualifying, stock, published
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, TRUE)
			ON CONFLICT (slug) DO UPDATE SET
				regular_price = EXCLUDED.regular_price,
				member_price = EXCLUDED.member_price,
				stock = EXCLUDED.stock
		`, p.Title, p.Slug, p.RegularPrice, p.MemberPrice,
			p.Promotional, promoPrice, promoStart, promoEnd,
			p.IsQualifying, p.Stock)
		if err != nil {
			log.Printf("Failed to seed product %s: %v", p.Slug, err)
		}
	}
}

func seedFaqs(ctx context.Context, pool *pgxpool.Pool) {
	faqs := []struct {
		Question string
		Answer   string
		Order    int32
	}{
		{"Bagaimana cara melayakkan diri untuk keahlian?", "Tambah produk yang melayakkan bernilai RM80 atau lebih ke dalam troli anda dan lengkapkan pembayaran. Keahlian diaktifkan secara automatik selepas pesanan dibayar.", 1},
		{"Adakah produk promosi dikira untuk kelayakan keahlian?", "Bergantung kepada tetapan semasa kedai. Apabila pengecualian promosi diaktifkan, produk berharga promosi tidak dikira ke arah ambang kelayakan.", 2},
		{"Berapa lama penghantaran mengambil masa?", "Penghantaran dalam Semenanjung Malaysia biasanya mengambil masa 2 hingga 5 hari bekerja. Sabah dan Sarawak mungkin mengambil masa sehingga 7 hari bekerja.", 3},
		{"Bolehkah saya membatalkan pesanan saya?", "Pesanan boleh dibatalkan selagi belum dibayar. Selepas pembayaran, sila hubungi khidmat pelanggan kami.", 4},
	}

	fmt.Println("Seeding FAQs...")
	for _, f := range faqs {
		_, err := pool.Exec(ctx, `
			INSERT INTO faqs (question, answer, display_order, published)
			SELECT $1, $2, $3, TRUE
			WHERE NOT EXISTS (SELECT 1 FROM faqs WHERE question = $1)
		`, f.Question, f.Answer, f.Order)
		if err != nil {
			log.Printf("Failed to seed faq: %v", err)
		}
	}
}

func seedArticles(ctx context.Context, pool *pgxpool.Pool) {
	articles := []struct {
		Title   string
		Slug    string
		Summary string
		Body    string
	}{
		{
			"Faedah Keahlian",
			"faedah-keahlian",
			"Ketahui kelebihan menjadi ahli kedai kami.",
			"Ahli menikmati harga istimewa untuk semua produk, akses awal kepada promosi, dan penghantaran percuma untuk pesanan terpilih. Keahlian adalah percuma dan diaktifkan secara automatik apabila pesanan anda melepasi ambang kelayakan.",
		},
		{
			"Panduan Saiz Pakaian",
			"panduan-saiz-pakaian",
			"Rujukan saiz untuk kemeja dan pakaian tradisional.",
			"Sila rujuk carta saiz pada setiap halaman produk sebelum membuat pesanan. Jika anda berada di antara dua saiz, kami syorkan memilih saiz yang lebih besar.",
		},
	}

	fmt.Println("Seeding Articles...")
	for _, a := range articles {
		_, err := pool.Exec(ctx, `
			INSERT INTO articles (title, slug, summary, body, published, published_at)
			VALUES ($1, $2, $3, $4, TRUE, now())
			ON CONFLICT (slug) DO NOTHING
		`, a.Title, a.Slug, a.Summary, a.Body)
		if err != nil {
			log.Printf("Failed to seed article %s: %v", a.Slug, err)
		}
	}
}
