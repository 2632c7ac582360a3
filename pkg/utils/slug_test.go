package utils

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"普通名称", "Kursi Kayu", "kursi-kayu"},
		{"大小写混合", "Meja MAKAN Jati", "meja-makan-jati"},
		{"连续特殊字符折叠", "Lemari  --  Pakaian!!", "lemari-pakaian"},
		{"首尾特殊字符", "  (Promo) Sofa Set  ", "promo-sofa-set"},
		{"数字保留", "Rak Buku 3 Tingkat", "rak-buku-3-tingkat"},
		{"全是特殊字符", "???", ""},
		{"空字符串", "", ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Slugify(c.in)
			if got != c.want {
				t.Fatalf("Slugify(%q) = %q, 期望 %q", c.in, got, c.want)
			}
		})
	}
}

// 相同输入必须产生相同 slug，导入按 slug 匹配依赖这一点
func TestSlugify_Deterministic(t *testing.T) {
	inputs := []string{"Kursi Kayu", "Meja & Kursi", "Produk #1 (Baru)"}
	for _, in := range inputs {
		first := Slugify(in)
		for i := 0; i < 10; i++ {
			if got := Slugify(in); got != first {
				t.Fatalf("Slugify(%q) 结果不稳定: %q != %q", in, got, first)
			}
		}
	}
}
