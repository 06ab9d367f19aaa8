package shader

import "testing"

func TestVariant(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		defines []string
		want    string
	}{
		{
			name: "no defines",
			src:  "#version 410 core\nvoid main() {}\n",
			want: "#version 410 core\nvoid main() {}\n",
		},
		{
			name:    "after version",
			src:     "#version 410 core\nvoid main() {}\n",
			defines: []string{"CAUSTICS", "MAX_ITER 5"},
			want:    "#version 410 core\n#define CAUSTICS\n#define MAX_ITER 5\nvoid main() {}\n",
		},
		{
			name:    "leading blank lines",
			src:     "\n#version 410 core\nvoid main() {}\n",
			defines: []string{"FOG"},
			want:    "\n#version 410 core\n#define FOG\nvoid main() {}\n",
		},
		{
			name:    "no version",
			src:     "void main() {}\n",
			defines: []string{" FOG "},
			want:    "#define FOG\nvoid main() {}\n",
		},
		{
			name:    "version only",
			src:     "#version 410 core",
			defines: []string{"FOG"},
			want:    "#version 410 core\n#define FOG\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Variant(tt.src, tt.defines...); got != tt.want {
				t.Errorf("Variant() = %q, want %q", got, tt.want)
			}
		})
	}
}
