package bot

// Static content tables: shop links, clip URLs, and canned menu/help texts.

const shopBaseURL = "https://www.furia.gg"

var shopLines = []string{
	"🛒 Loja oficial FURIA: " + shopBaseURL,
	"👕 Camisetas: " + shopBaseURL + "/produtos/vestuario/camisetas",
	"🧢 Bonés: " + shopBaseURL + "/produtos/acessorios/bones",
	"🎧 Acessórios: " + shopBaseURL + "/produtos/acessorios",
}

var clipURLs = []string{
	"https://youtu.be/furia_highlight1",
	"https://youtu.be/furia_highlight2",
	"https://youtu.be/furia_highlight3",
}

var startLines = []string{
	"Fala, guerreiro(a)! 🖤🔥 Aqui é o Contato Inteligente da FURIA! 👊",
	"🎯 Funções: !status (placar ao vivo), !proximos (próximos jogos), !resultados (resultados recentes), " +
		"!alerta (alerta de início de jogo), !votar <nome> (votar no MVP), !clip (highlight aleatório), " +
		"!ping (testar latência), !stream (onde assistir ao vivo), !loja (abrir loja oficial), !ajuda (todos os comandos)",
	"📜 Termos de uso: https://terms.furia.gg/ — digite !aceito para aceitar e continuar",
}

var helpLines = []string{
	"🛠️ Comandos FURIA Bot:",
	"!start — menu inicial | !status — placar ao vivo | !proximos — próximos jogos",
	"!resultados — resultados recentes | !alerta — alerta de início de jogo | !votar <nome> — votar no MVP",
	"!clip — highlight aleatório | !ping — teste de latência | !stream — onde assistir | !loja — loja oficial",
}
