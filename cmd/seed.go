package cmd

import (
	"context"
	"fmt"

	"filme-catalog/internal/data/entity"
	"filme-catalog/internal/data/repository"

	"go.uber.org/zap"
)

// SampleFilmes is the catalog loaded by Seed. It is inserted as-is: the
// unavailable rows and the out-of-set genre are part of the sample data.
var SampleFilmes = []*entity.Filme{
	{Titulo: "Interestelar", Descricao: "Exploração espacial em busca de um novo lar para a humanidade", Duracao: 169, Genero: entity.GeneroFiccaoCientifica, Nota: 8.6, Disponibilidade: true},
	{Titulo: "O Poderoso Chefão", Descricao: "A saga de uma família mafiosa italiana", Duracao: 175, Genero: entity.GeneroDrama, Nota: 9.2, Disponibilidade: true},
	{Titulo: "Vingadores: Ultimato", Descricao: "Os heróis se unem para enfrentar Thanos", Duracao: 181, Genero: entity.GeneroAcao, Nota: 8.4, Disponibilidade: false},
	{Titulo: "Parasita", Descricao: "Uma crítica social cheia de suspense", Duracao: 132, Genero: entity.GeneroSuspense, Nota: 8.5, Disponibilidade: true},
	{Titulo: "Cidade de Deus", Descricao: "A realidade do crime organizado no Rio de Janeiro", Duracao: 130, Genero: entity.GeneroDrama, Nota: 8.7, Disponibilidade: true},
	{Titulo: "Matrix", Descricao: "A humanidade vive em uma simulação criada por máquinas", Duracao: 136, Genero: entity.GeneroFiccaoCientifica, Nota: 8.7, Disponibilidade: false},
	{Titulo: "Gladiador", Descricao: "Um general romano busca vingança", Duracao: 155, Genero: entity.GeneroAcao, Nota: 8.5, Disponibilidade: true},
	{Titulo: "Whiplash", Descricao: "A obsessão pela perfeição na música", Duracao: 106, Genero: entity.GeneroDrama, Nota: 8.5, Disponibilidade: true},
	{Titulo: "Toy Story", Descricao: "Brinquedos ganham vida quando humanos não estão por perto", Duracao: 81, Genero: entity.GeneroAnimacao, Nota: 8.3, Disponibilidade: true},
	{Titulo: "O Senhor dos Anéis: A Sociedade do Anel", Descricao: "Uma jornada épica para destruir um anel poderoso", Duracao: 178, Genero: entity.Genero("Fantasia"), Nota: 8.8, Disponibilidade: false},
}

// Seed bulk-inserts SampleFilmes when the table is empty. It returns the
// number of rows inserted.
func Seed(ctx context.Context, repo repository.FilmeRepository, logger *zap.Logger) (int64, error) {
	total, err := repo.CountAll(ctx, repository.FilmeFilter{})
	if err != nil {
		return 0, fmt.Errorf("count filmes: %w", err)
	}
	if total > 0 {
		logger.Info("Seed skipped, filme table not empty", zap.Int64("rows", total))
		return 0, nil
	}

	n, err := repo.CreateBatch(ctx, SampleFilmes)
	if err != nil {
		return 0, fmt.Errorf("seed filmes: %w", err)
	}

	logger.Info("Seed completed", zap.Int64("rows", n))
	return n, nil
}
