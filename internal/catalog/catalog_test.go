package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lglog/internal/model"
)

func catalogo() *Catalog {
	return New(map[string]model.SKUInfo{
		"Box Poesia Clássica": {SKU: "SKU1", Peso: 1.2, Tipo: "produto", GuruIDs: []string{"g1", "g2"}},
		"Clube do Livro":      {SKU: "ASS1", Tipo: "assinatura"},
		"Box Romance":         {SKU: "SKU2", Tipo: "produto", Indisponivel: true},
	})
}

func TestInfoNomeExato(t *testing.T) {
	info, ok := catalogo().Info("Box Poesia Clássica")
	require.True(t, ok)
	assert.Equal(t, "SKU1", info.SKU)
}

func TestInfoNomeNormalizado(t *testing.T) {
	// sem acento e com caixa trocada ainda encontra
	info, ok := catalogo().Info("  box poesia classica ")
	require.True(t, ok)
	assert.Equal(t, "SKU1", info.SKU)

	_, ok = catalogo().Info("inexistente")
	assert.False(t, ok)
}

func TestPorGuruID(t *testing.T) {
	info, ok := catalogo().PorGuruID("g2")
	require.True(t, ok)
	assert.Equal(t, "SKU1", info.SKU)

	_, ok = catalogo().PorGuruID("g99")
	assert.False(t, ok)
}

func TestIndisponivel(t *testing.T) {
	c := catalogo()
	assert.True(t, c.Indisponivel("Box Romance", ""))
	assert.True(t, c.Indisponivel("", "sku2"))
	assert.False(t, c.Indisponivel("Box Poesia Clássica", "SKU1"))
	assert.False(t, c.Indisponivel("ninguém", "NADA"))
}

func TestProdutosExcluiAssinatura(t *testing.T) {
	produtos := catalogo().Produtos()
	assert.Contains(t, produtos, "Box Poesia Clássica")
	assert.NotContains(t, produtos, "Clube do Livro")
}

func TestLoadCriaExemploQuandoNaoExiste(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skus.json")

	c, err := Load(path)
	require.NoError(t, err)
	_, ok := c.Info("Exemplo Produto")
	assert.True(t, ok)

	// o arquivo semente ficou no disco
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestLoadArquivoExistente(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skus.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Meu Box":{"sku":"B1","tipo":"produto"}}`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	info, ok := c.Info("meu box")
	require.True(t, ok)
	assert.Equal(t, "B1", info.SKU)
}

func TestLoadArquivoInvalido(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skus.json")
	require.NoError(t, os.WriteFile(path, []byte(`nada a ver`), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestNormalizeNome(t *testing.T) {
	assert.Equal(t, "edicao especial", NormalizeNome("  Edição ESPECIAL "))
}
