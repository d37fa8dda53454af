package server

// standaloneHTML is the self-contained chat page served by the standalone
// variant. It keeps only the session id client-side; history lives on the
// server, one list per session.
const standaloneHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Nestlé HR Assistant</title>
    <script src="https://cdn.tailwindcss.com"></script>
    <style>
        @import url('https://fonts.googleapis.com/css2?family=Inter:wght@400;500;700&display=swap');
        body { font-family: 'Inter', sans-serif; }
    </style>
</head>
<body class="bg-gray-100 flex items-center justify-center min-h-screen p-4">
    <div class="bg-white shadow-xl rounded-2xl w-full max-w-2xl overflow-hidden flex flex-col h-[80vh]">
        <div class="bg-blue-600 text-white p-4 shadow-md">
            <h1 class="text-xl font-bold">Nestlé HR Assistant</h1>
        </div>
        <div id="chat-history" class="flex-1 p-4 overflow-y-auto space-y-4">
            <div class="flex justify-start">
                <div class="bg-gray-200 text-gray-800 p-3 rounded-xl max-w-sm">
                    <p>Hello! I'm your HR Assistant. How can I help you with the Nestlé HR policy today?</p>
                </div>
            </div>
        </div>
        <form id="chat-form" class="bg-gray-200 p-4 flex items-center">
            <input type="text" id="user-input" class="flex-1 p-3 rounded-full border border-gray-300 focus:outline-none focus:ring-2 focus:ring-blue-500" placeholder="Ask a question about the HR policy...">
            <button type="submit" class="ml-2 bg-blue-600 text-white px-5 py-3 rounded-full hover:bg-blue-700 transition duration-300">Send</button>
        </form>
    </div>
    <script>
        let sessionId = null;

        function addBubble(text, mine) {
            const history = document.getElementById('chat-history');
            const div = document.createElement('div');
            div.className = mine ? 'flex justify-end' : 'flex justify-start';
            const bubble = document.createElement('div');
            bubble.className = mine
                ? 'bg-blue-500 text-white p-3 rounded-xl max-w-sm'
                : 'bg-gray-200 text-gray-800 p-3 rounded-xl max-w-sm';
            bubble.textContent = text;
            div.appendChild(bubble);
            history.appendChild(div);
            history.scrollTop = history.scrollHeight;
        }

        document.getElementById('chat-form').addEventListener('submit', async function(e) {
            e.preventDefault();
            const input = document.getElementById('user-input');
            const message = input.value.trim();
            if (message === '') return;
            addBubble(message, true);
            input.value = '';
            try {
                const res = await fetch('/chat', {
                    method: 'POST',
                    headers: { 'Content-Type': 'application/json' },
                    body: JSON.stringify({ query: message, session_id: sessionId }),
                });
                const data = await res.json();
                if (data.session_id) sessionId = data.session_id;
                addBubble(data.response, false);
            } catch (err) {
                addBubble('An error occurred. Please try again.', false);
            }
        });
    </script>
</body>
</html>
`
