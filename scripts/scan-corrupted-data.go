package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/questforge/questforge/internal/entities"
)

// Checks the five snapshot keys for JSON that no longer decodes into
// the expected shape. The loader silently falls back to empty maps on
// corrupt keys, so this is how you find out WHY a world came up empty.
// Offers to delete the bad keys, which resets just that slice of state.

func main() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}
	prefix := os.Getenv("QUESTFORGE_REDIS_PREFIX")

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	fmt.Println("Connected to Redis:", redisURL)

	key := func(k string) string {
		if prefix == "" {
			return k
		}
		return prefix + ":" + k
	}

	checks := []struct {
		key    string
		decode func(data []byte) error
	}{
		{"users", decodeInto[map[string]*entities.User]},
		{"tasks", decodeInto[map[string][]*entities.Task]},
		{"parties", decodeInto[map[string]*entities.Party]},
		{"quests", decodeInto[map[string]*entities.Quest]},
		// currentUser is a bare string, never JSON.
		{"currentUser", func([]byte) error { return nil }},
	}

	var corruptedKeys []string
	for _, c := range checks {
		data, err := client.Get(ctx, key(c.key)).Result()
		if err == redis.Nil {
			fmt.Printf("  %-12s absent\n", c.key)
			continue
		}
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", c.key, err)
			continue
		}
		if err := c.decode([]byte(data)); err != nil {
			fmt.Printf("x %-12s corrupted: %v\n", c.key, err)
			corruptedKeys = append(corruptedKeys, key(c.key))
			continue
		}
		fmt.Printf("  %-12s ok (%d bytes)\n", c.key, len(data))
	}

	if len(corruptedKeys) == 0 {
		fmt.Println("\nNo corrupted data found!")
		return
	}

	fmt.Print("\nDo you want to DELETE these corrupted keys? (yes/no): ")
	var response string
	fmt.Scanln(&response)

	if response != "yes" {
		fmt.Println("Aborted - no changes made")
		return
	}
	for _, k := range corruptedKeys {
		if err := client.Del(ctx, k).Err(); err != nil {
			fmt.Printf("Failed to delete %s: %v\n", k, err)
		} else {
			fmt.Printf("Deleted %s\n", k)
		}
	}
	fmt.Println("Cleanup complete!")
}

func decodeInto[T any](data []byte) error {
	var v T
	return json.Unmarshal(data, &v)
}
