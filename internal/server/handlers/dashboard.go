package handlers

import "net/http"

// DashboardHandler serves the run-history dashboard HTML page
func DashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(dashboardHTML))
	}
}

var dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>llmdeck Dashboard</title>
    <script src="https://cdn.tailwindcss.com"></script>
    <noscript>
        <style>
            body { font-family: system-ui, sans-serif; background: #1a1a2e; color: #eee; padding: 2rem; }
            .container { max-width: 800px; margin: auto; }
        </style>
    </noscript>
    <style>
        /* Fallback styles if Tailwind fails to load */
        body:not(.bg-gray-900) { font-family: system-ui, sans-serif; background: #1a1a2e; color: #eee; padding: 2rem; }
        body:not(.bg-gray-900) .container { max-width: 800px; margin: auto; }
    </style>
</head>
<body class="bg-gray-900 text-gray-100 min-h-screen">
    <div class="container mx-auto px-4 py-6 max-w-6xl">
        <header class="mb-6 flex justify-between items-center">
            <div>
                <h1 class="text-2xl font-bold text-white flex items-center gap-2">
                    🃏 llmdeck
                </h1>
                <p class="text-gray-400 text-sm">LLM Playground Run Tracker</p>
            </div>
            <div id="stats" class="flex gap-4 text-sm text-gray-400"></div>
        </header>

        <!-- Providers Card -->
        <div class="bg-gray-800 rounded-xl p-4 mb-6">
            <h3 class="text-sm font-semibold text-gray-400 mb-3">🧩 Providers</h3>
            <div id="providers" class="flex flex-wrap gap-2 text-xs"></div>
        </div>

        <!-- Runs Card -->
        <div class="bg-gray-800 rounded-xl p-4 mb-6">
            <div class="flex items-center justify-between mb-3">
                <h3 class="text-sm font-semibold text-gray-400">📜 Recent Runs</h3>
                <button onclick="clearRuns()" class="text-xs bg-red-600 hover:bg-red-500 px-3 py-1 rounded">🗑 Clear</button>
            </div>
            <div class="overflow-x-auto">
                <table class="w-full text-sm">
                    <thead>
                        <tr class="text-gray-400 text-xs border-b border-gray-700">
                            <th class="text-left py-2">Status</th>
                            <th class="text-left py-2">Model</th>
                            <th class="text-left py-2">Provider</th>
                            <th class="text-left py-2">Session</th>
                            <th class="text-left py-2">Time</th>
                        </tr>
                    </thead>
                    <tbody id="runs"></tbody>
                </table>
            </div>
        </div>
    </div>

    <script>
        let statusColors = {};

        // Unknown statuses fall back to a neutral badge; the server returns
        // no color for them.
        function badge(status) {
            const color = statusColors[status] || 'bg-gray-500';
            return '<span class="px-2 py-1 rounded text-xs text-white ' + color + '">' + status + '</span>';
        }

        async function loadStatusColors() {
            const res = await fetch('/api/status-colors');
            statusColors = (await res.json()).colors || {};
        }

        async function loadStats() {
            const res = await fetch('/api/stats');
            const s = await res.json();
            document.getElementById('stats').innerHTML =
                '<span>Total: ' + s.total_runs + '</span>' +
                '<span class="text-green-400">Done: ' + s.done_count + '</span>' +
                '<span class="text-red-400">Errors: ' + s.error_count + '</span>';
        }

        async function loadProviders() {
            const res = await fetch('/api/providers');
            const data = await res.json();
            document.getElementById('providers').innerHTML = (data.providers || []).map(p =>
                '<span class="px-2 py-1 rounded bg-gray-700 text-gray-300' + (p.enabled ? '' : ' line-through') + '">' +
                (p.display_name || p.id) + ' · ' + p.models.length + ' models</span>'
            ).join('');
        }

        async function loadRuns() {
            const res = await fetch('/api/runs?limit=50');
            const data = await res.json();
            document.getElementById('runs').innerHTML = (data.runs || []).map(run =>
                '<tr class="border-b border-gray-700/50">' +
                '<td class="py-2">' + badge(run.status) + '</td>' +
                '<td class="py-2 font-mono">' + run.model + '</td>' +
                '<td class="py-2">' + (run.provider || '—') + '</td>' +
                '<td class="py-2 text-gray-400">' + (run.session_id || '') + '</td>' +
                '<td class="py-2 text-gray-400">' + new Date(run.timestamp).toLocaleTimeString() + '</td>' +
                '</tr>'
            ).join('');
        }

        async function clearRuns() {
            if (!confirm('Delete all recorded runs?')) return;
            const res = await fetch('/api/runs', { method: 'DELETE' });
            if (!res.ok) {
                alert('Failed to clear runs: HTTP ' + res.status);
                return;
            }
            refresh();
        }

        async function refresh() {
            await Promise.all([loadStats(), loadProviders(), loadRuns()]);
        }

        loadStatusColors().then(refresh);
        setInterval(refresh, 10000);
    </script>
</body>
</html>`
