package bpe

// Generate documentation for the root package
//go:generate gomarkdoc -o README.md -e . --embed --repository.url https://github.com/agentstation/bpe --repository.default-branch master --repository.path /

// Generate documentation for the CLI package
//go:generate gomarkdoc -o ./cmd/tokenizer/README.md -e ./cmd/tokenizer --embed --repository.url https://github.com/agentstation/bpe --repository.default-branch master --repository.path /cmd/tokenizer
